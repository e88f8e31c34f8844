// Pulseboard - Demo Analytics Dashboard
// Copyright 2026 Pulseboard Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsekit/pulseboard

// Package auth implements session-based authentication: credential
// verification, the session store, the auth service, the request guard
// and the expired-session sweeper.
package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the fixed hashing cost. 10 rounds keeps login latency
// acceptable while staying expensive for offline brute force.
const bcryptCost = 10

// dummyPasswordHash is compared against when an account cannot match
// (unknown email, passwordless demo account) so that those paths cost the
// same as a wrong password. Valid bcrypt hash of an unused value.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// VerifyPassword reports whether the plaintext password matches the
// stored bcrypt hash. A mismatch is a normal outcome, never an error;
// bcrypt's comparison is timing-safe by design.
func VerifyPassword(password, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}

// HashPassword hashes a plaintext password at the fixed cost. Used by the
// seed tool; the server itself never stores passwords.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// burnPasswordCheck performs a bcrypt comparison against the dummy hash.
// Called on login paths that are already known to fail, so response
// timing does not reveal whether the email exists.
func burnPasswordCheck(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyPasswordHash), []byte(password))
}
