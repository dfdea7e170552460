// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

package authtoken

import (
	"sync"
	"time"
)

// blacklistEntry tracks a revoked token ID and its natural expiry.
// Once the token would have expired anyway, Verify rejects it
// regardless, so Cleanup drops the entry.
type blacklistEntry struct {
	tokenExpiresAt time.Time
}

// Blacklist is a thread-safe in-memory set of revoked token IDs.
// Logout adds the presented access token's ID; subsequent Verify
// calls reject it. Access tokens live 24 hours by default, so the set
// stays small under any plausible logout rate.
type Blacklist struct {
	mu      sync.RWMutex
	entries map[string]blacklistEntry
}

// NewBlacklist creates an empty blacklist.
func NewBlacklist() *Blacklist {
	return &Blacklist{entries: make(map[string]blacklistEntry)}
}

// Revoke adds a token ID. The entry is removable by Cleanup once
// tokenExpiresAt has passed.
func (b *Blacklist) Revoke(tokenID string, tokenExpiresAt time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[tokenID] = blacklistEntry{tokenExpiresAt: tokenExpiresAt}
}

// IsRevoked reports whether a token ID has been revoked.
func (b *Blacklist) IsRevoked(tokenID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, exists := b.entries[tokenID]
	return exists
}

// Cleanup removes entries whose token's natural expiry has passed and
// returns how many were dropped.
func (b *Blacklist) Cleanup(now time.Time) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	removed := 0
	for tokenID, entry := range b.entries {
		if !now.Before(entry.tokenExpiresAt) {
			delete(b.entries, tokenID)
			removed++
		}
	}
	return removed
}

// Len returns the number of revoked entries currently held.
func (b *Blacklist) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}
