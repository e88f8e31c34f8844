// Pulseboard - Demo Analytics Dashboard
// Copyright 2026 Pulseboard Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsekit/pulseboard

// Package api provides the HTTP edge: Chi routing, request middleware,
// the auth endpoints and uniform response shaping.
package api

import (
	"time"

	"github.com/pulsekit/pulseboard/internal/auth"
	"github.com/pulsekit/pulseboard/internal/database"
)

// Version is the reported application version. Overridden at build time
// via -ldflags.
var Version = "dev"

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	auth      *auth.Service
	cookies   *auth.CookieWriter
	db        *database.DB
	startTime time.Time
}

// NewHandler creates the handler set. db may be nil in tests that do not
// exercise the health endpoint's database check.
func NewHandler(authService *auth.Service, cookies *auth.CookieWriter, db *database.DB) *Handler {
	return &Handler{
		auth:      authService,
		cookies:   cookies,
		db:        db,
		startTime: time.Now(),
	}
}
