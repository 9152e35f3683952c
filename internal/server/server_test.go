package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/polemicos/dzin-schedule/internal/config"
	"github.com/polemicos/dzin-schedule/internal/logbuffer"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		Environment:      "development",
		HTTPBind:         "127.0.0.1",
		HTTPPort:         0,
		Employee:         "Diana",
		DayMarker:        "dzień",
		Sheet:            "Plan",
		EventSummary:     "Работа",
		Timezone:         "UTC",
		StagingDir:       t.TempDir(),
		RetentionMinutes: 60,
		CleanupCron:      "*/10 * * * *",
		MaxUploadSizeMB:  16,
	}

	srv, err := New(cfg, logbuffer.New(16), zerolog.Nop())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	t.Cleanup(func() {
		if err := srv.Close(); err != nil {
			t.Errorf("close server: %v", err)
		}
	})
	return srv
}

func TestServerHealthz(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	srv.HTTPServer().Handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if body := rr.Body.String(); !strings.Contains(body, `"status":"ok"`) || !strings.Contains(body, `"version"`) {
		t.Fatalf("unexpected health body: %s", body)
	}
}

func TestServerMetricsEndpoint(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	srv.HTTPServer().Handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "dzin_api_active_connections") {
		t.Fatalf("metrics output missing service metrics:\n%.400s", rr.Body.String())
	}
}

func TestServerDebugLogsRoute(t *testing.T) {
	srv := testServer(t)
	srv.LogBuffer().Add(logbuffer.LogEntry{Level: "info", Message: "staging directory ready"})

	req := httptest.NewRequest(http.MethodGet, "/debug/logs?n=5", nil)
	rr := httptest.NewRecorder()
	srv.HTTPServer().Handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if body := rr.Body.String(); !strings.Contains(body, "staging directory ready") {
		t.Fatalf("debug logs missing entry: %s", body)
	}
}

func TestServerUploadRouteRejectsEmptyBody(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/upload-schedule", nil)
	rr := httptest.NewRecorder()
	srv.HTTPServer().Handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "invalid_multipart") {
		t.Fatalf("expected invalid_multipart error, got %s", rr.Body.String())
	}
}
