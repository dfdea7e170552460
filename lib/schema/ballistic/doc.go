// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

// Package ballistic defines the range-data records a user logs
// against a rifle: DOPE entries, zero confirmations, chronograph
// sessions, and stored trajectory results.
//
// Trajectory results hold caller-computed data. The server validates
// the input parameters and persists the trajectory payload verbatim;
// it does not run a ballistics solver.
package ballistic
