// Pulseboard - Demo Analytics Dashboard
// Copyright 2026 Pulseboard Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsekit/pulseboard

package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/pulsekit/pulseboard/internal/auth"
	"github.com/pulsekit/pulseboard/internal/metrics"
	"github.com/pulsekit/pulseboard/internal/models"
	"github.com/pulsekit/pulseboard/internal/validation"
)

// LoginRequest is the credential login body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginDemo handles one-click demo login
//
// @Summary Log in as the demo account
// @Description Starts a session for the well-known demo account without credentials and sets the session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.Principal} "Logged in"
// @Failure 429 {object} models.APIError "Rate limited"
// @Failure 500 {object} models.APIError "Demo account missing or misconfigured"
// @Router /auth/demo [post]
func (h *Handler) LoginDemo(w http.ResponseWriter, r *http.Request) {
	result, err := h.auth.LoginDemo(r.Context())
	if err != nil {
		metrics.RecordLogin("demo", "error")
		respondAuthError(w, r, err)
		return
	}

	metrics.RecordLogin("demo", "success")
	metrics.SessionsCreated.Inc()
	h.cookies.SetSessionCookie(w, result.Session.ID, result.Session.ExpiresAt)
	respondData(w, http.StatusOK, result.Principal)
}

// Login handles credential login
//
// @Summary Log in with email and password
// @Description Verifies credentials, starts a session and sets the session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} models.APIResponse{data=models.Principal} "Logged in"
// @Failure 400 {object} models.APIError "Malformed or invalid body"
// @Failure 401 {object} models.APIError "Invalid email or password"
// @Failure 429 {object} models.APIError "Rate limited"
// @Router /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.RecordLogin("credentials", "failure")
		respondError(w, r, http.StatusBadRequest, "Malformed request body")
		return
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
		metrics.RecordLogin("credentials", "failure")
		respondError(w, r, http.StatusBadRequest, verr.Messages())
		return
	}

	result, err := h.auth.LoginWithCredentials(r.Context(), req.Email, req.Password)
	if err != nil {
		outcome := "error"
		if errors.Is(err, auth.ErrInvalidCredentials) {
			outcome = "failure"
		}
		metrics.RecordLogin("credentials", outcome)
		respondAuthError(w, r, err)
		return
	}

	metrics.RecordLogin("credentials", "success")
	metrics.SessionsCreated.Inc()
	h.cookies.SetSessionCookie(w, result.Session.ID, result.Session.ExpiresAt)
	respondData(w, http.StatusOK, result.Principal)
}

// Me returns the authenticated principal
//
// @Summary Get the current principal
// @Description Returns the identity behind the session cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.Principal} "Current principal"
// @Failure 401 {object} models.APIError "Missing, invalid or expired session"
// @Router /auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	if principal == nil {
		// The guard always runs first; a nil principal here is a
		// routing mistake, not a client error.
		respondError(w, r, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		return
	}
	respondData(w, http.StatusOK, principal)
}

// Logout ends the current session
//
// @Summary Log out
// @Description Deletes the session and clears the cookie. Succeeds even without a valid session.
// @Tags Auth
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.LogoutResult} "Logged out"
// @Router /auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(r.Context(), auth.SessionIDFromRequest(r))
	metrics.LogoutsTotal.Inc()

	h.cookies.ClearSessionCookie(w)
	respondData(w, http.StatusOK, models.LogoutResult{OK: true})
}
