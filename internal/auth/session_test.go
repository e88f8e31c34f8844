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

	"github.com/pulsekit/pulseboard/internal/models"
)

// fakeDirectory is an in-memory UserDirectory for tests.
type fakeDirectory struct {
	byID    map[string]*models.User
	byEmail map[string]*models.User
	err     error
}

func newFakeDirectory(users ...*models.User) *fakeDirectory {
	d := &fakeDirectory{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]*models.User),
	}
	for _, u := range users {
		d.byID[u.ID] = u
		d.byEmail[u.Email] = u
	}
	return d
}

func (d *fakeDirectory) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	if d.err != nil {
		return nil, d.err
	}
	if u, ok := d.byEmail[email]; ok {
		return u, nil
	}
	return nil, ErrUserNotFound
}

func (d *fakeDirectory) UserByID(ctx context.Context, id string) (*models.User, error) {
	if d.err != nil {
		return nil, d.err
	}
	if u, ok := d.byID[id]; ok {
		return u, nil
	}
	return nil, ErrUserNotFound
}

func testUser(role models.Role) *models.User {
	return &models.User{
		ID:        uuid.NewString(),
		Email:     "user@example.com",
		Role:      role,
		CreatedAt: time.Now(),
	}
}

func TestSessionIsExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		expired   bool
	}{
		{name: "future expiry", expiresAt: now.Add(time.Hour), expired: false},
		{name: "past expiry", expiresAt: now.Add(-time.Hour), expired: true},
		{name: "expires exactly now", expiresAt: now, expired: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Session{ExpiresAt: tt.expiresAt}
			if got := s.IsExpired(now); got != tt.expired {
				t.Errorf("IsExpired = %v, want %v", got, tt.expired)
			}
		})
	}
}

func TestMemoryStoreCreateAndValidate(t *testing.T) {
	user := testUser(models.RoleUser)
	store := NewMemorySessionStore(newFakeDirectory(user), 24*time.Hour)
	ctx := context.Background()

	session, err := store.Create(ctx, user.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if session.ID == "" {
		t.Fatal("session has empty ID")
	}
	if got := session.ExpiresAt.Sub(session.CreatedAt); got != 24*time.Hour {
		t.Errorf("session lifetime = %v, want 24h", got)
	}

	validated, err := store.Validate(ctx, session.ID)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if validated.User.ID != user.ID {
		t.Errorf("validated user = %s, want %s", validated.User.ID, user.ID)
	}
	if validated.SessionID != session.ID {
		t.Errorf("validated session ID = %s, want %s", validated.SessionID, session.ID)
	}
}

func TestMemoryStoreValidateUnknown(t *testing.T) {
	store := NewMemorySessionStore(newFakeDirectory(), 24*time.Hour)

	_, err := store.Validate(context.Background(), uuid.NewString())
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestMemoryStoreValidateExpired(t *testing.T) {
	user := testUser(models.RoleUser)
	store := NewMemorySessionStore(newFakeDirectory(user), time.Hour)

	now := time.Now()
	store.now = func() time.Time { return now }

	session, err := store.Create(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Advance past the TTL. The expired session must be rejected and
	// removed so a later validate fails the same way.
	store.now = func() time.Time { return now.Add(2 * time.Hour) }

	for i := 0; i < 2; i++ {
		_, err = store.Validate(context.Background(), session.ID)
		if !errors.Is(err, ErrSessionNotFound) {
			t.Fatalf("validate %d: err = %v, want ErrSessionNotFound", i, err)
		}
	}
}

func TestMemoryStoreDeleteIdempotent(t *testing.T) {
	user := testUser(models.RoleUser)
	store := NewMemorySessionStore(newFakeDirectory(user), time.Hour)
	ctx := context.Background()

	session, err := store.Create(ctx, user.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Delete(ctx, session.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, session.ID); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}

	if _, err := store.Validate(ctx, session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestMemoryStoreDeleteExpired(t *testing.T) {
	user := testUser(models.RoleUser)
	store := NewMemorySessionStore(newFakeDirectory(user), time.Hour)
	ctx := context.Background()

	now := time.Now()
	store.now = func() time.Time { return now }

	var live *Session
	for i := 0; i < 3; i++ {
		s, err := store.Create(ctx, user.ID)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		live = s
	}

	// Make two of the three expired.
	store.now = func() time.Time { return now.Add(30 * time.Minute) }
	count := 0
	store.mu.Lock()
	for _, s := range store.sessions {
		if s.ID != live.ID && count < 2 {
			s.ExpiresAt = now.Add(-time.Minute)
			count++
		}
	}
	store.mu.Unlock()

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

func TestMemoryStoreValidateOrphanedSession(t *testing.T) {
	dir := newFakeDirectory()
	store := NewMemorySessionStore(dir, time.Hour)
	ctx := context.Background()

	session, err := store.Create(ctx, uuid.NewString())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// The session's user does not exist. That is indistinguishable from
	// no session at all.
	_, err = store.Validate(ctx, session.ID)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}
