// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

// Package account defines the wire representation of user accounts
// and the request payloads accepted by the authentication endpoints.
//
// JSON field names are camelCase to match what the mobile client
// sends and parses.
package account
