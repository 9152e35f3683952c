/*
Copyright (C) 2026 Polemicos

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP metrics.
var (
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dzin_api_requests_total",
		Help: "Total number of API requests.",
	}, []string{"method", "endpoint", "status"})

	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dzin_api_request_duration_seconds",
		Help:    "API request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint", "status"})

	APIActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dzin_api_active_connections",
		Help: "Number of in-flight API requests.",
	})
)

// Schedule extraction metrics.
var (
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dzin_uploads_total",
		Help: "Schedule uploads by outcome.",
	}, []string{"outcome"})

	ParseDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dzin_parse_duration_seconds",
		Help:    "Time spent reading and parsing one workbook.",
		Buckets: prometheus.DefBuckets,
	})

	ShiftsExtracted = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dzin_shifts_extracted",
		Help:    "Shifts extracted per successful upload.",
		Buckets: prometheus.LinearBuckets(0, 5, 8),
	})

	IntervalsRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dzin_intervals_rejected_total",
		Help: "Day intervals dropped for degenerate or unparseable content.",
	})
)

// Upload outcome label values.
const (
	OutcomeSuccess          = "success"
	OutcomeInvalidRequest   = "invalid_request"
	OutcomeUnreadable       = "unreadable"
	OutcomeEmployeeNotFound = "employee_not_found"
	OutcomeNoShifts         = "no_shifts"
	OutcomeError            = "error"
)

// Handler exposes the Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
