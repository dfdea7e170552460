// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts wall-clock time so that expiry logic is
// testable. Everything in the backend that compares against "now"
// (JWT lifetimes, OTP expiry, reset-token validity, the periodic
// purge of stale tokens) takes a Clock instead of calling the time
// package directly. Production code injects Real(); tests inject Fake() and
// advance time deterministically.
package clock
