// Pulseboard - Demo Analytics Dashboard
// Copyright 2026 Pulseboard Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsekit/pulseboard

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pulsekit/pulseboard/internal/logging"
	"github.com/pulsekit/pulseboard/internal/models"
)

var (
	// ErrInvalidCredentials covers every credential failure: unknown
	// email, passwordless account, wrong password. The message is the
	// one shown to users; nothing in it reveals which case occurred.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidSession means the request carried no usable session.
	ErrInvalidSession = errors.New("invalid or expired session")

	// ErrDemoAccount means the demo login cannot work because the demo
	// account is missing or misconfigured. This is an operator problem,
	// not a user one, and surfaces as a server error.
	ErrDemoAccount = errors.New("demo account misconfigured")
)

// Service is the authentication facade: it owns the login flows, session
// resolution and logout.
type Service struct {
	users     UserDirectory
	sessions  SessionStore
	demoEmail string
}

// NewService wires the auth service to its user directory and session
// store. demoEmail identifies the account the one-click demo login uses.
func NewService(users UserDirectory, sessions SessionStore, demoEmail string) *Service {
	return &Service{users: users, sessions: sessions, demoEmail: demoEmail}
}

// LoginResult is a successful login: the new session plus the principal
// to echo back to the client.
type LoginResult struct {
	Session   *Session
	Principal models.Principal
}

// LoginDemo starts a session for the demo account without credentials.
// A missing or wrongly-configured demo account is reported with enough
// detail for an operator to fix the seed.
func (s *Service) LoginDemo(ctx context.Context) (*LoginResult, error) {
	user, err := s.users.UserByEmail(ctx, s.demoEmail)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, fmt.Errorf("%w: user not found (email: %s), run the database seed", ErrDemoAccount, s.demoEmail)
		}
		return nil, fmt.Errorf("failed to load demo account: %w", err)
	}

	if user.Role != models.RoleDemo {
		return nil, fmt.Errorf("%w: expected role %s, got %s", ErrDemoAccount, models.RoleDemo, user.Role)
	}

	return s.startSession(ctx, user)
}

// LoginWithCredentials verifies an email/password pair and starts a
// session. All failure causes collapse into ErrInvalidCredentials and
// cost one bcrypt comparison each, so neither the response body nor its
// timing reveals whether the email exists.
func (s *Service) LoginWithCredentials(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			burnPasswordCheck(password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if user.PasswordHash == nil {
		// Demo account. It has no password and cannot be logged into
		// with credentials.
		burnPasswordCheck(password)
		return nil, ErrInvalidCredentials
	}

	if !VerifyPassword(password, *user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.startSession(ctx, user)
}

// Principal resolves a session ID to the logged-in principal. Any
// session that cannot be resolved to a live user yields
// ErrInvalidSession; storage failures propagate unchanged.
func (s *Service) Principal(ctx context.Context, sessionID string) (*models.Principal, error) {
	if sessionID == "" {
		return nil, ErrInvalidSession
	}

	validated, err := s.sessions.Validate(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	principal := validated.User.Principal()
	return &principal, nil
}

// Logout ends a session. It never fails from the caller's point of view;
// a storage error is logged and the client still gets its cookie
// cleared.
func (s *Service) Logout(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		logging.Warn().Err(err).Msg("Failed to delete session on logout")
	}
}

func (s *Service) startSession(ctx context.Context, user *models.User) (*LoginResult, error) {
	session, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	return &LoginResult{Session: session, Principal: user.Principal()}, nil
}
