// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

// The rifleaxis-server binary is the RifleAxis backend: a JSON HTTP
// API serving the mobile app. It covers account management (signup,
// login, Google sign-in, password reset via emailed OTP), the loadout
// inventory (rifles, ammunition, scopes, maintenance schedules), and
// ballistic data logging (DOPE charts, zero tracking, chronograph
// sessions, stored trajectory calculations).
//
// All state lives in a single SQLite database. Every authenticated
// route is scoped to the user identified by the bearer token; rows
// belonging to other users are indistinguishable from rows that do
// not exist.
//
// Configuration comes from a YAML file named by --config or the
// RIFLEAXIS_CONFIG environment variable.
package main
