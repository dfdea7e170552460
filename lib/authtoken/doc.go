// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

// Package authtoken mints and verifies the JWTs that gate every
// protected route. Two token kinds exist: short-lived access tokens
// presented on API calls, and long-lived refresh tokens accepted only
// by the refresh endpoint. A token of one kind is rejected where the
// other is expected: the kind is an audience check, not a hint.
//
// Every token carries a unique ID (jti) so that logout can revoke the
// presented token server-side via the Blacklist, which auto-expires
// entries once the token's natural lifetime has passed.
package authtoken
