// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/rifleaxis-foundation/rifleaxis/lib/clock"
	"github.com/rifleaxis-foundation/rifleaxis/lib/schema/account"
	"github.com/rifleaxis-foundation/rifleaxis/lib/schema/loadout"
	"github.com/rifleaxis-foundation/rifleaxis/lib/testutil"
)

// newTestStore opens a store on a throwaway database with a fake
// clock pinned to a fixed time.
func newTestStore(t *testing.T) (*Store, *clock.FakeClock) {
	t.Helper()
	fake := clock.Fake(time.Unix(1_700_000_000, 0))
	store, err := Open(Config{
		Path:   filepath.Join(t.TempDir(), "rifleaxis.db"),
		Clock:  fake,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, fake
}

// createTestUser inserts a user and returns it.
func createTestUser(t *testing.T, s *Store) *account.User {
	t.Helper()
	user := &account.User{
		FullName:     "Test Shooter",
		Email:        testutil.UniqueEmail(),
		PasswordHash: "$2a$10$notarealhash",
		IsActive:     true,
		SignInMethod: account.SignInEmail,
	}
	if err := s.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

func createTestRifle(t *testing.T, s *Store, userID string) *loadout.Rifle {
	t.Helper()
	rifle := &loadout.Rifle{
		UserID:            userID,
		Name:              "Match Rifle",
		Brand:             "Tikka",
		Manufacturer:      "Tikka",
		GenerationVariant: "T3x",
		Model:             "TAC A1",
		Caliber:           "6.5 Creedmoor",
	}
	if err := s.CreateRifle(context.Background(), rifle); err != nil {
		t.Fatalf("CreateRifle: %v", err)
	}
	return rifle
}

func createTestAmmunition(t *testing.T, s *Store, userID string) *loadout.Ammunition {
	t.Helper()
	ammunition := &loadout.Ammunition{
		UserID:       userID,
		Name:         "Factory Match",
		Manufacturer: "Hornady",
		Caliber:      "6.5 Creedmoor",
		Count:        200,
	}
	if err := s.CreateAmmunition(context.Background(), ammunition); err != nil {
		t.Fatalf("CreateAmmunition: %v", err)
	}
	return ammunition
}

func createTestScope(t *testing.T, s *Store, userID string) *loadout.Scope {
	t.Helper()
	scope := &loadout.Scope{
		UserID:       userID,
		Manufacturer: "Vortex",
		Model:        "Razor HD",
	}
	if err := s.CreateScope(context.Background(), scope); err != nil {
		t.Fatalf("CreateScope: %v", err)
	}
	return scope
}

func TestPing(t *testing.T) {
	fake := clock.Fake(time.Unix(1_700_000_000, 0))
	s, err := Open(Config{
		Path:   filepath.Join(t.TempDir(), "rifleaxis.db"),
		Clock:  fake,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping on open store = %v, want nil", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Ping(context.Background()); err == nil {
		t.Error("Ping on closed store = nil, want error")
	}
}

func TestDeleteAllData(t *testing.T) {
	s, _ := newTestStore(t)
	user := createTestUser(t, s)
	createTestRifle(t, s, user.ID)
	createTestAmmunition(t, s, user.ID)

	if err := s.DeleteAllData(context.Background()); err != nil {
		t.Fatalf("DeleteAllData: %v", err)
	}

	if _, err := s.UserByID(context.Background(), user.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("UserByID after reset error = %v, want ErrNotFound", err)
	}
	rifles, err := s.Rifles(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Rifles: %v", err)
	}
	if len(rifles) != 0 {
		t.Errorf("rifles after reset = %d, want 0", len(rifles))
	}
}
