// Pulseboard - Demo Analytics Dashboard
// Copyright 2026 Pulseboard Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsekit/pulseboard

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/pulsekit/pulseboard/docs" // generated swagger docs
	"github.com/pulsekit/pulseboard/internal/api"
	"github.com/pulsekit/pulseboard/internal/auth"
	"github.com/pulsekit/pulseboard/internal/config"
	"github.com/pulsekit/pulseboard/internal/database"
	"github.com/pulsekit/pulseboard/internal/logging"
	"github.com/pulsekit/pulseboard/internal/supervisor"
	"github.com/pulsekit/pulseboard/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("db_path", cfg.Database.Path).
		Int("port", cfg.Server.Port).
		Msg("Starting Pulseboard")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized")

	users := auth.NewDBUserDirectory(db)
	sessions := auth.NewDBSessionStore(db, cfg.Auth.SessionTTL)
	authService := auth.NewService(users, sessions, cfg.Auth.DemoEmail)

	handler := api.NewHandler(authService, &auth.CookieWriter{Secure: cfg.IsProduction()}, db)
	router := api.NewRouter(handler, &api.RouterConfig{
		Middleware: &api.ChiMiddlewareConfig{
			CORSAllowedOrigins:    cfg.Server.CORSOrigins,
			RateLimitRequests:     cfg.RateLimit.GlobalRequests,
			RateLimitWindow:       cfg.RateLimit.GlobalWindow,
			AuthRateLimitRequests: cfg.RateLimit.AuthRequests,
			AuthRateLimitWindow:   cfg.RateLimit.AuthWindow,
			RateLimitDisabled:     cfg.RateLimit.Disabled,
		},
		EnableSwagger: !cfg.IsProduction(),
	})
	defer router.Close()

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	treeConfig := supervisor.DefaultTreeConfig()
	treeConfig.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeConfig)

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	tree.AddMaintenanceService(auth.NewSweeper(sessions, cfg.Auth.SweepInterval))
	logging.Info().Dur("interval", cfg.Auth.SweepInterval).Msg("Session sweeper service added")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
