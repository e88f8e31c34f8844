// Pulseboard - Demo Analytics Dashboard
// Copyright 2026 Pulseboard Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsekit/pulseboard

package api

import (
	"errors"
	"net/http"

	"github.com/pulsekit/pulseboard/internal/auth"
	"github.com/pulsekit/pulseboard/internal/logging"
)

// respondAuthError maps auth service errors onto the API error taxonomy.
// Credential and session failures are client errors with their sentinel
// messages. Demo-account misconfiguration keeps its detail in the 500
// body so the operator sees what to fix; every other server fault is
// logged and answered with a generic message.
func respondAuthError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(w, r, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidSession):
		respondError(w, r, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	case errors.Is(err, auth.ErrDemoAccount):
		logging.Error().Str("path", sanitizeLogValue(r.URL.Path)).Err(err).Msg("Demo login failed")
		respondError(w, r, http.StatusInternalServerError, err.Error())
	default:
		logging.Error().Str("path", sanitizeLogValue(r.URL.Path)).Err(err).Msg("Request failed")
		respondError(w, r, http.StatusInternalServerError, "Internal server error")
	}
}
