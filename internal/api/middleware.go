// Pulseboard - Demo Analytics Dashboard
// Copyright 2026 Pulseboard Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsekit/pulseboard

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/pulsekit/pulseboard/internal/auth"
	"github.com/pulsekit/pulseboard/internal/logging"
	"github.com/pulsekit/pulseboard/internal/metrics"
)

// ChiMiddlewareConfig configures the route-level middleware stack.
type ChiMiddlewareConfig struct {
	CORSAllowedOrigins []string

	// Global limit, applied per IP across all API routes.
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Stricter limit for the login endpoints.
	AuthRateLimitRequests int
	AuthRateLimitWindow   time.Duration

	RateLimitDisabled bool
}

// ChiMiddleware builds the Chi-compatible middleware stack.
type ChiMiddleware struct {
	config      *ChiMiddlewareConfig
	cors        func(http.Handler) http.Handler
	authLimiter *auth.RateLimiter
}

// NewChiMiddleware creates the middleware factory. Call Close when the
// router is torn down to stop the auth limiter's cleanup loop.
func NewChiMiddleware(config *ChiMiddlewareConfig) *ChiMiddleware {
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   config.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           86400,
	})

	m := &ChiMiddleware{config: config, cors: corsHandler}
	if !config.RateLimitDisabled {
		m.authLimiter = auth.NewRateLimiter(config.AuthRateLimitRequests, config.AuthRateLimitWindow)
	}
	return m
}

// Close stops background middleware state.
func (m *ChiMiddleware) Close() {
	if m.authLimiter != nil {
		m.authLimiter.Stop()
	}
}

// CORS returns the CORS middleware. Credentials are allowed because the
// SPA sends the session cookie cross-origin during development.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimit returns the global per-IP limiter.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		m.config.RateLimitRequests,
		m.config.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(rateLimitExceeded),
	)
}

// RateLimitAuth returns the strict limiter guarding the login endpoints
// against credential brute force.
func (m *ChiMiddleware) RateLimitAuth() func(http.Handler) http.Handler {
	if m.authLimiter == nil {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := auth.ClientIP(r)
			if !m.authLimiter.Allow(ip) {
				logging.Warn().Str("ip", sanitizeLogValue(ip)).Str("path", sanitizeLogValue(r.URL.Path)).Msg("Auth rate limit exceeded")
				rateLimitExceeded(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func rateLimitExceeded(w http.ResponseWriter, r *http.Request) {
	metrics.APIRateLimitHits.WithLabelValues(r.URL.Path).Inc()
	respondError(w, r, http.StatusTooManyRequests, "Too many requests")
}

// Recoverer converts handler panics into the uniform 500 body instead of
// a dropped connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logging.Error().Interface("panic", rec).Str("path", sanitizeLogValue(r.URL.Path)).Msg("Handler panicked")
				respondError(w, r, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
