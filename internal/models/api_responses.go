// Pulseboard - Demo Analytics Dashboard
// Copyright 2026 Pulseboard Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsekit/pulseboard

package models

import "time"

// APIResponse is the uniform success envelope: every 2xx body wraps its
// payload in a "data" field so the SPA client can unwrap responses the
// same way everywhere.
type APIResponse struct {
	Data interface{} `json:"data"`
}

// APIError is the uniform error body returned for every failed request,
// including panics and unmatched routes.
//
// Message is a single string for most errors, or a list of strings for
// request-validation failures.
type APIError struct {
	StatusCode int         `json:"statusCode"`
	Message    interface{} `json:"message"`
	Error      string      `json:"error"`
	Timestamp  time.Time   `json:"timestamp"`
	Path       string      `json:"path"`
}

// LogoutResult is the payload of a successful logout.
type LogoutResult struct {
	OK bool `json:"ok"`
}

// HealthStatus reports server liveness for monitoring and the SPA splash
// screen.
type HealthStatus struct {
	// Status is "ok" when all checks pass, "degraded" otherwise.
	Status string `json:"status"`

	Timestamp time.Time `json:"timestamp"`

	// DatabaseConnected reports whether the storage layer answers pings.
	DatabaseConnected bool `json:"databaseConnected"`

	// Uptime is seconds since process start.
	Uptime float64 `json:"uptime"`

	Version string `json:"version"`
}
