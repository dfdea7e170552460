// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for RifleAxis
// packages.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

var uniqueCounter atomic.Uint64

// UniqueID returns "prefix-N" with a monotonically increasing N.
// Tests use it for identifiers that must not collide across parallel
// subtests (user emails, rifle names and similar).
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, uniqueCounter.Add(1))
}

// UniqueEmail returns a syntactically valid, process-unique email
// address for signup tests.
func UniqueEmail() string {
	return fmt.Sprintf("shooter-%d@example.com", uniqueCounter.Add(1))
}

// RequireClosed waits for ch to close (or deliver a value) within
// timeout, failing the test otherwise. Used for readiness channels
// that signal by closing, like httpserver.Server.Ready().
func RequireClosed(t *testing.T, ch <-chan struct{}, timeout time.Duration, message string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(timeout):
		t.Fatalf("timed out after %v waiting for channel close: %s", timeout, message)
	}
}
