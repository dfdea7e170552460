// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

// Package loadout defines the equipment records a user maintains:
// rifles, ammunition, scopes, and maintenance tasks, plus the request
// payloads that create and update them.
//
// Free-form sub-documents (a rifle's barrel details, a scope's travel
// limits, a maintenance interval) are kept as raw JSON: the client
// owns their shape and the server stores them verbatim.
package loadout
