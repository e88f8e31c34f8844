// Pulseboard - Demo Analytics Dashboard
// Copyright 2026 Pulseboard Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsekit/pulseboard

// Package main provides the Pulseboard HTTP server
//
// @title Pulseboard API
// @version 1.0
// @description Demo analytics dashboard backend with session-based authentication.
// @description
// @description ## Authentication
// @description
// @description Authenticated endpoints require a session cookie. Use `/api/auth/demo`
// @description for a one-click demo session or `/api/auth/login` with credentials.
// @description The cookie is HTTP-only and expires with the session after 24 hours.
// @description
// @description ## Rate Limiting
// @description
// @description Global limit: 300 requests per minute per IP.
// @description Login endpoints: 10 requests per minute per IP.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "statusCode": 401,
// @description   "message": "invalid or expired session",
// @description   "error": "Unauthorized",
// @description   "timestamp": "2026-03-01T12:34:56Z",
// @description   "path": "/api/auth/me"
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/pulsekit/pulseboard
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /api
//
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name sessionId
package main
