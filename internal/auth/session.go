// Pulseboard - Demo Analytics Dashboard
// Copyright 2026 Pulseboard Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsekit/pulseboard

package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pulsekit/pulseboard/internal/models"
)

var (
	// ErrSessionNotFound is returned when a session ID is unknown or
	// has expired. Callers must not distinguish the two cases.
	ErrSessionNotFound = errors.New("session not found")

	// ErrUserNotFound is returned by a UserDirectory when no account
	// matches the lookup.
	ErrUserNotFound = errors.New("user not found")
)

// Session is a server-side login session. The ID is the opaque bearer
// token handed to the client in a cookie.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired reports whether the session is expired at the given instant.
// A session expiring exactly now is already expired.
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// ValidatedSession is a session that passed validation, joined with the
// account it belongs to.
type ValidatedSession struct {
	SessionID string
	User      models.User
}

// SessionStore persists login sessions.
type SessionStore interface {
	// Create starts a new session for the user and returns it.
	Create(ctx context.Context, userID string) (*Session, error)

	// Validate resolves a session ID to its user. Unknown and expired
	// sessions both return ErrSessionNotFound; expired rows are
	// deleted opportunistically.
	Validate(ctx context.Context, sessionID string) (*ValidatedSession, error)

	// Delete removes a session. Deleting a session that does not
	// exist is not an error.
	Delete(ctx context.Context, sessionID string) error

	// DeleteExpired removes all expired sessions and returns how many
	// were removed.
	DeleteExpired(ctx context.Context) (int, error)
}

// UserDirectory resolves accounts. Lookups that match nothing return
// ErrUserNotFound.
type UserDirectory interface {
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id string) (*models.User, error)
}

// newSessionID returns a fresh unguessable session identifier.
func newSessionID() string {
	return uuid.NewString()
}

// MemorySessionStore keeps sessions in process memory. Used by tests and
// available for development runs without a database file.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	users    UserDirectory
	ttl      time.Duration
	now      func() time.Time
}

// NewMemorySessionStore creates an in-memory store backed by the given
// user directory for validation joins.
func NewMemorySessionStore(users UserDirectory, ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*Session),
		users:    users,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *MemorySessionStore) Create(ctx context.Context, userID string) (*Session, error) {
	now := m.now()
	session := &Session{
		ID:        newSessionID(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	return session, nil
}

func (m *MemorySessionStore) Validate(ctx context.Context, sessionID string) (*ValidatedSession, error) {
	m.mu.RLock()
	session, ok := m.sessions[sessionID]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	if session.IsExpired(m.now()) {
		m.mu.Lock()
		delete(m.sessions, sessionID)
		m.mu.Unlock()
		return nil, ErrSessionNotFound
	}

	user, err := m.users.UserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return &ValidatedSession{SessionID: session.ID, User: *user}, nil
}

func (m *MemorySessionStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
	return nil
}

func (m *MemorySessionStore) DeleteExpired(ctx context.Context) (int, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, session := range m.sessions {
		if session.IsExpired(now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}
