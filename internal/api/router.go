// Pulseboard - Demo Analytics Dashboard
// Copyright 2026 Pulseboard Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsekit/pulseboard

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/pulsekit/pulseboard/internal/auth"
	"github.com/pulsekit/pulseboard/internal/middleware"
)

// RouterConfig carries the settings the router needs from the
// application config.
type RouterConfig struct {
	Middleware *ChiMiddlewareConfig

	// EnableSwagger mounts /swagger/* when true. Off in production.
	EnableSwagger bool
}

// Router assembles the HTTP routing tree.
type Router struct {
	handler       *Handler
	guard         *auth.Guard
	chiMiddleware *ChiMiddleware
	config        *RouterConfig
}

// NewRouter wires handlers, the session guard and the middleware stack.
func NewRouter(handler *Handler, config *RouterConfig) *Router {
	router := &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(config.Middleware),
		config:        config,
	}
	router.guard = auth.NewGuard(handler.auth, respondAuthError)
	return router
}

// Close releases middleware resources.
func (router *Router) Close() {
	router.chiMiddleware.Close()
}

// Setup builds the route tree.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global stack, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.Route("/api", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/health", router.handler.Health)

		r.Route("/auth", func(r chi.Router) {
			// Login endpoints carry the strict brute-force limiter.
			r.With(router.chiMiddleware.RateLimitAuth()).Post("/demo", router.handler.LoginDemo)
			r.With(router.chiMiddleware.RateLimitAuth()).Post("/login", router.handler.Login)

			r.With(router.guard.RequireSession).Get("/me", router.handler.Me)

			// Logout needs no valid session; it always clears the cookie.
			r.Post("/logout", router.handler.Logout)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	if router.config.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
			httpSwagger.DeepLinking(true),
			httpSwagger.DocExpansion("list"),
			httpSwagger.DomID("swagger-ui"),
		))
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
