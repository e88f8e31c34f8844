// Pulseboard - Demo Analytics Dashboard
// Copyright 2026 Pulseboard Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsekit/pulseboard

// Package models defines the shared data structures for Pulseboard.
package models

import "time"

// Role is the stored user role.
type Role string

const (
	// RoleDemo marks the single well-known demo account. Demo accounts
	// never carry a password hash and cannot log in with credentials.
	RoleDemo Role = "DEMO"

	// RoleUser marks a standard credentialed account.
	RoleUser Role = "USER"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleDemo || r == RoleUser
}

// User is an identity record. Users are created by the seed tool and are
// never mutated or deleted by the auth subsystem.
type User struct {
	// ID is the unique user identifier (UUID).
	ID string `json:"id"`

	// Email is the unique login email, stored lowercase.
	Email string `json:"email"`

	// Role is DEMO or USER.
	Role Role `json:"role"`

	// PasswordHash is the bcrypt hash of the password, or nil for
	// demo-only accounts that have no credential login path.
	PasswordHash *string `json:"-"`

	// CreatedAt is when the user row was created.
	CreatedAt time.Time `json:"createdAt"`
}

// Principal is the request-scoped identity projection exposed to handlers
// after successful authentication. It lives only for the request and is
// never persisted.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`

	// Role is the simplified role: "demo" or "user".
	Role string `json:"role"`
}

// Principal derives the request-scoped view of the user.
func (u *User) Principal() Principal {
	role := "user"
	if u.Role == RoleDemo {
		role = "demo"
	}
	return Principal{
		ID:    u.ID,
		Email: u.Email,
		Role:  role,
	}
}
