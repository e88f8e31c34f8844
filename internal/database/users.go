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

// UserByEmail looks up a user by email. Callers are expected to normalize
// the email (trim + lowercase) before calling; the stored value is always
// lowercase.
func (db *DB) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return db.scanUser(db.conn.QueryRowContext(ctx,
		`SELECT id, email, role, password_hash, created_at FROM users WHERE email = ?`, email))
}

// UserByID looks up a user by its identifier.
func (db *DB) UserByID(ctx context.Context, id string) (*models.User, error) {
	return db.scanUser(db.conn.QueryRowContext(ctx,
		`SELECT id, email, role, password_hash, created_at FROM users WHERE id = ?`, id))
}

func (db *DB) scanUser(row *sql.Row) (*models.User, error) {
	var (
		user models.User
		hash sql.NullString
	)
	err := row.Scan(&user.ID, &user.Email, &user.Role, &hash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("select_user").Inc()
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	if hash.Valid {
		user.PasswordHash = &hash.String
	}
	return &user, nil
}

// UpsertUser inserts a user or, when the email already exists, updates its
// role and (only if provided) its password hash. Used by the seed tool;
// the server never writes user rows.
func (db *DB) UpsertUser(ctx context.Context, user *models.User) (*models.User, error) {
	var hash interface{}
	if user.PasswordHash != nil {
		hash = *user.PasswordHash
	}

	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, email, role, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (email) DO UPDATE SET
		   role = excluded.role,
		   password_hash = coalesce(excluded.password_hash, users.password_hash)`,
		user.ID, user.Email, string(user.Role), hash, createdAt)
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("upsert_user").Inc()
		return nil, fmt.Errorf("failed to upsert user %s: %w", user.Email, err)
	}

	return db.UserByEmail(ctx, user.Email)
}
