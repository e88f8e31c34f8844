// Pulseboard - Demo Analytics Dashboard
// Copyright 2026 Pulseboard Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsekit/pulseboard

package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "password123" {
		t.Fatal("hash equals plaintext")
	}

	if !VerifyPassword("password123", hash) {
		t.Error("correct password rejected")
	}
	if VerifyPassword("password124", hash) {
		t.Error("wrong password accepted")
	}
	if VerifyPassword("", hash) {
		t.Error("empty password accepted")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{name: "empty hash", hash: ""},
		{name: "not a bcrypt hash", hash: "plaintext"},
		{name: "truncated hash", hash: "$2a$10$abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if VerifyPassword("password123", tt.hash) {
				t.Error("malformed hash accepted")
			}
		})
	}
}

func TestDummyHashIsValidBcrypt(t *testing.T) {
	// The timing-equalization hash must be parseable so the burned
	// comparison actually costs a full bcrypt round.
	cost, err := bcrypt.Cost([]byte(dummyPasswordHash))
	if err != nil {
		t.Fatalf("dummy hash is not valid bcrypt: %v", err)
	}
	if cost != bcryptCost {
		t.Errorf("dummy hash cost = %d, want %d", cost, bcryptCost)
	}
}
