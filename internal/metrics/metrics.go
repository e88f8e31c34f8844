// Pulseboard - Demo Analytics Dashboard
// Copyright 2026 Pulseboard Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsekit/pulseboard

// Package metrics provides Prometheus instrumentation for the API and
// the auth subsystem. Metrics are exposed at /metrics in Prometheus
// text format.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Auth metrics
	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"method", "outcome"}, // method: "demo", "credentials"; outcome: "success", "failure", "error"
	)

	LogoutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_logouts_total",
			Help: "Total number of logouts",
		},
	)

	SessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_sessions_created_total",
			Help: "Total number of sessions created",
		},
	)

	SessionsSweptTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_sessions_swept_total",
			Help: "Total number of expired sessions removed by the sweeper",
		},
	)

	SessionValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_session_validations_total",
			Help: "Total number of session cookie validations",
		},
		[]string{"outcome"}, // "valid", "invalid"
	)

	// Database metrics
	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation"},
	)
)

// RecordAPIRequest records a completed API request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordLogin records a login attempt by method and outcome.
func RecordLogin(method, outcome string) {
	LoginsTotal.WithLabelValues(method, outcome).Inc()
}

// RecordSessionValidation records a guard decision.
func RecordSessionValidation(valid bool) {
	outcome := "invalid"
	if valid {
		outcome = "valid"
	}
	SessionValidations.WithLabelValues(outcome).Inc()
}

// SessionsSwept adds a sweep result to the swept-session counter.
func SessionsSwept(removed int) {
	if removed > 0 {
		SessionsSweptTotal.Add(float64(removed))
	}
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
