// Pulseboard - Demo Analytics Dashboard
// Copyright 2026 Pulseboard Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsekit/pulseboard

// Package middleware provides HTTP middleware shared across routes:
// request IDs for tracing and Prometheus request instrumentation.
package middleware

import (
	"net/http"

	"github.com/pulsekit/pulseboard/internal/logging"
)

// RequestID tags each request with a unique ID, echoed in the
// X-Request-ID response header and available on the context for log
// correlation. An ID supplied by an upstream proxy is kept.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = logging.GenerateRequestID()
		}

		w.Header().Set("X-Request-ID", requestID)
		ctx := logging.ContextWithRequestID(r.Context(), requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
