// Pulseboard - Demo Analytics Dashboard
// Copyright 2026 Pulseboard Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsekit/pulseboard

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pulsekit/pulseboard/internal/database"
	"github.com/pulsekit/pulseboard/internal/logging"
	"github.com/pulsekit/pulseboard/internal/models"
)

// DBSessionStore persists sessions in DuckDB. This is the store the
// server runs with; expiry is enforced on read and swept in the
// background.
type DBSessionStore struct {
	db  *database.DB
	ttl time.Duration
	now func() time.Time
}

// NewDBSessionStore creates a database-backed session store with the
// given session lifetime.
func NewDBSessionStore(db *database.DB, ttl time.Duration) *DBSessionStore {
	return &DBSessionStore{db: db, ttl: ttl, now: time.Now}
}

func (s *DBSessionStore) Create(ctx context.Context, userID string) (*Session, error) {
	now := s.now()
	session := &Session{
		ID:        newSessionID(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.db.InsertSession(ctx, session.ID, session.UserID, session.CreatedAt, session.ExpiresAt); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

func (s *DBSessionStore) Validate(ctx context.Context, sessionID string) (*ValidatedSession, error) {
	join, err := s.db.SessionWithUser(ctx, sessionID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}

	if !join.ExpiresAt.After(s.now()) {
		// Lazy expiry. Removal is best effort; the sweeper picks up
		// anything missed here.
		if err := s.db.DeleteSession(ctx, sessionID); err != nil {
			logging.Warn().Err(err).Str("session_id", sessionID).Msg("Failed to delete expired session")
		}
		return nil, ErrSessionNotFound
	}

	return &ValidatedSession{SessionID: join.SessionID, User: join.User}, nil
}

func (s *DBSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.db.DeleteSession(ctx, sessionID)
}

func (s *DBSessionStore) DeleteExpired(ctx context.Context) (int, error) {
	return s.db.DeleteExpiredSessions(ctx, s.now())
}

// DBUserDirectory adapts the database user queries to the UserDirectory
// interface, mapping the storage sentinel to the auth one.
type DBUserDirectory struct {
	db *database.DB
}

// NewDBUserDirectory wraps the database as a user directory.
func NewDBUserDirectory(db *database.DB) *DBUserDirectory {
	return &DBUserDirectory{db: db}
}

func (d *DBUserDirectory) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := d.db.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (d *DBUserDirectory) UserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := d.db.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
