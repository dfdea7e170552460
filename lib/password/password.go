// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

// Package password wraps bcrypt hashing for stored credentials.
// Accounts created through Google sign-in have no hash at all; the
// empty hash always fails verification rather than erroring, so the
// login path needs no special case.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt's default cost (10) keeps login latency in the tens of
// milliseconds on current hardware, which is where we want it.
const hashCost = bcrypt.DefaultCost

// Hash derives a bcrypt hash from a plaintext password.
func Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", errors.New("password: refusing to hash an empty password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return "", fmt.Errorf("password: hashing: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored hash. An empty
// hash (Google-only account) never matches.
func Verify(hash, plaintext string) bool {
	if hash == "" || plaintext == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
