// Pulseboard - Demo Analytics Dashboard
// Copyright 2026 Pulseboard Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsekit/pulseboard

// Package main provides the database seed tool. It provisions the demo
// account and a sample credentialed user, upserting by email so repeated
// runs are safe.
package main

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pulsekit/pulseboard/internal/auth"
	"github.com/pulsekit/pulseboard/internal/config"
	"github.com/pulsekit/pulseboard/internal/database"
	"github.com/pulsekit/pulseboard/internal/logging"
	"github.com/pulsekit/pulseboard/internal/models"
)

const (
	sampleUserEmail    = "john@example.com"
	sampleUserPassword = "password123"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: "console",
	})

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	demo, err := db.UpsertUser(ctx, &models.User{
		ID:    uuid.NewString(),
		Email: cfg.Auth.DemoEmail,
		Role:  models.RoleDemo,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to seed demo account")
	}
	logging.Info().Str("email", demo.Email).Str("role", string(demo.Role)).Msg("Demo account ready")

	hash, err := auth.HashPassword(sampleUserPassword)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to hash sample password")
	}
	sample, err := db.UpsertUser(ctx, &models.User{
		ID:           uuid.NewString(),
		Email:        sampleUserEmail,
		Role:         models.RoleUser,
		PasswordHash: &hash,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to seed sample user")
	}
	logging.Info().Str("email", sample.Email).Str("role", string(sample.Role)).Msg("Sample user ready")

	logging.Info().Msg("Seed complete")
}
