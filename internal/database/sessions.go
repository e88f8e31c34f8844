// Pulseboard - Demo Analytics Dashboard
// Copyright 2026 Pulseboard Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsekit/pulseboard

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pulsekit/pulseboard/internal/metrics"
	"github.com/pulsekit/pulseboard/internal/models"
)

// SessionJoin is a session row joined with its owning user, as read by
// validation.
type SessionJoin struct {
	SessionID string
	CreatedAt time.Time
	ExpiresAt time.Time
	User      models.User
}

// InsertSession persists a new session row. The PRIMARY KEY on session_id
// is the uniqueness backstop for the generated identifier.
func (db *DB) InsertSession(ctx context.Context, sessionID, userID string, createdAt, expiresAt time.Time) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO sessions (session_id, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)`,
		sessionID, userID, createdAt, expiresAt)
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("insert_session").Inc()
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// SessionWithUser reads a session joined with its owner in a single
// statement. Expiry is NOT checked here; the caller decides what an
// expired row means.
func (db *DB) SessionWithUser(ctx context.Context, sessionID string) (*SessionJoin, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT s.session_id, s.created_at, s.expires_at, u.id, u.email, u.role
		 FROM sessions s JOIN users u ON u.id = s.user_id
		 WHERE s.session_id = ?`, sessionID)

	var join SessionJoin
	err := row.Scan(&join.SessionID, &join.CreatedAt, &join.ExpiresAt,
		&join.User.ID, &join.User.Email, &join.User.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("select_session").Inc()
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}
	return &join, nil
}

// DeleteSession removes a session row. Deleting an absent session is a
// no-op, not an error.
func (db *DB) DeleteSession(ctx context.Context, sessionID string) error {
	if _, err := db.conn.ExecContext(ctx,
		`DELETE FROM sessions WHERE session_id = ?`, sessionID); err != nil {
		metrics.DBQueryErrors.WithLabelValues("delete_session").Inc()
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes every session whose expiry is strictly
// before the given instant and returns the number of rows removed.
func (db *DB) DeleteExpiredSessions(ctx context.Context, before time.Time) (int, error) {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, before)
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("delete_expired_sessions").Inc()
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted sessions: %w", err)
	}
	return int(count), nil
}
