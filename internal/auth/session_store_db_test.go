// Pulseboard - Demo Analytics Dashboard
// Copyright 2026 Pulseboard Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsekit/pulseboard

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pulsekit/pulseboard/internal/config"
	"github.com/pulsekit/pulseboard/internal/database"
	"github.com/pulsekit/pulseboard/internal/models"
)

func setupDBStore(t *testing.T, ttl time.Duration) (*DBSessionStore, *database.DB) {
	t.Helper()

	db, err := database.New(&config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "256MB",
		Threads:   1,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return NewDBSessionStore(db, ttl), db
}

func seedDBUser(t *testing.T, db *database.DB, email string, role models.Role) *models.User {
	t.Helper()

	user, err := db.UpsertUser(context.Background(), &models.User{
		ID:    uuid.NewString(),
		Email: email,
		Role:  role,
	})
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func TestDBStoreCreateAndValidate(t *testing.T) {
	store, db := setupDBStore(t, 24*time.Hour)
	user := seedDBUser(t, db, "alice@example.com", models.RoleUser)
	ctx := context.Background()

	session, err := store.Create(ctx, user.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if got := session.ExpiresAt.Sub(session.CreatedAt); got != 24*time.Hour {
		t.Errorf("session lifetime = %v, want 24h", got)
	}

	validated, err := store.Validate(ctx, session.ID)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if validated.User.Email != "alice@example.com" {
		t.Errorf("validated email = %s, want alice@example.com", validated.User.Email)
	}
}

func TestDBStoreValidateUnknown(t *testing.T) {
	store, _ := setupDBStore(t, time.Hour)

	_, err := store.Validate(context.Background(), "no-such-session")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestDBStoreValidateExpiredDeletesRow(t *testing.T) {
	store, db := setupDBStore(t, time.Hour)
	user := seedDBUser(t, db, "bob@example.com", models.RoleUser)
	ctx := context.Background()

	now := time.Now()
	store.now = func() time.Time { return now }

	session, err := store.Create(ctx, user.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	store.now = func() time.Time { return now.Add(2 * time.Hour) }

	if _, err := store.Validate(ctx, session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}

	// Lazy expiry removed the row, so the join now misses entirely.
	if _, err := db.SessionWithUser(ctx, session.ID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("expired row still present: %v", err)
	}
}

func TestDBStoreDeleteExpired(t *testing.T) {
	store, db := setupDBStore(t, time.Hour)
	user := seedDBUser(t, db, "carol@example.com", models.RoleUser)
	ctx := context.Background()

	now := time.Now()

	// Two expired, one live.
	store.now = func() time.Time { return now.Add(-3 * time.Hour) }
	for i := 0; i < 2; i++ {
		if _, err := store.Create(ctx, user.ID); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	store.now = func() time.Time { return now }
	live, err := store.Create(ctx, user.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	removed, err := store.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("DeleteExpired failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	if _, err := store.Validate(ctx, live.ID); err != nil {
		t.Errorf("live session invalidated: %v", err)
	}
}

func TestDBUserDirectoryMapsNotFound(t *testing.T) {
	_, db := setupDBStore(t, time.Hour)
	dir := NewDBUserDirectory(db)
	ctx := context.Background()

	if _, err := dir.UserByEmail(ctx, "ghost@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("UserByEmail err = %v, want ErrUserNotFound", err)
	}
	if _, err := dir.UserByID(ctx, "no-such-id"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("UserByID err = %v, want ErrUserNotFound", err)
	}

	seeded := seedDBUser(t, db, "dave@example.com", models.RoleDemo)
	user, err := dir.UserByEmail(ctx, "dave@example.com")
	if err != nil {
		t.Fatalf("UserByEmail failed: %v", err)
	}
	if user.ID != seeded.ID {
		t.Errorf("user ID = %s, want %s", user.ID, seeded.ID)
	}
}
