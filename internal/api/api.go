/*
Copyright (C) 2026 Polemicos

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package api exposes the HTTP handlers for schedule conversion.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/polemicos/dzin-schedule/internal/config"
	"github.com/polemicos/dzin-schedule/internal/logbuffer"
	"github.com/polemicos/dzin-schedule/internal/staging"
)

// API exposes HTTP handlers.
type API struct {
	cfg            *config.Config
	staging        *staging.Service
	logBuffer      *logbuffer.Buffer
	maxUploadBytes int64
	logger         zerolog.Logger
}

// New creates the API handler set.
func New(cfg *config.Config, stagingSvc *staging.Service, logBuf *logbuffer.Buffer, logger zerolog.Logger) *API {
	return &API{
		cfg:            cfg,
		staging:        stagingSvc,
		logBuffer:      logBuf,
		maxUploadBytes: cfg.MaxUploadSizeBytes(),
		logger:         logger.With().Str("component", "api").Logger(),
	}
}

// Routes mounts API routes on the provided router.
func (a *API) Routes(r chi.Router) {
	r.Post("/upload-schedule", a.handleUploadSchedule)

	r.Route("/debug", func(r chi.Router) {
		r.Get("/logs", a.handleDebugLogs)
	})
}

// handleDebugLogs serves the most recent in-memory log entries.
func (a *API) handleDebugLogs(w http.ResponseWriter, r *http.Request) {
	if a.logBuffer == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "log buffer not available",
		})
		return
	}

	limit := 100
	if raw := r.URL.Query().Get("n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid_limit")
			return
		}
		limit = n
	}
	if limit > 1000 {
		limit = 1000
	}

	entries := a.logBuffer.Recent(limit)
	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(entries),
		"entries": entries,
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
