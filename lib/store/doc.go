// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

// Package store persists accounts, loadout equipment, and ballistic
// records in SQLite.
//
// Every row is owned by a user. Read, update, and delete methods take
// the owner's user ID and match it against the row; a row that exists
// but belongs to someone else is reported as ErrNotFound, so callers
// cannot distinguish foreign rows from missing ones. Cross-record
// references (a rifle's scope, a DOPE entry's ammunition) are checked
// against the same owner before they are written.
package store
