// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rifleaxis-foundation/rifleaxis/lib/schema/account"
)

func TestCreateAndFindUser(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)

	if user.ID == "" {
		t.Fatal("CreateUser did not assign an ID")
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("CreateUser did not stamp timestamps")
	}

	byID, err := store.UserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("UserByID: %v", err)
	}
	if byID.Email != user.Email {
		t.Errorf("Email = %q, want %q", byID.Email, user.Email)
	}
	if byID.PasswordHash != user.PasswordHash {
		t.Error("password hash did not round-trip")
	}

	byEmail, err := store.UserByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("UserByEmail: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Errorf("UserByEmail ID = %q, want %q", byEmail.ID, user.ID)
	}

	if _, err := store.UserByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UserByID(missing) = %v, want ErrNotFound", err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)

	duplicate := &account.User{
		FullName:     "Other Shooter",
		Email:        user.Email,
		SignInMethod: account.SignInEmail,
	}
	if err := store.CreateUser(ctx, duplicate); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("CreateUser(duplicate email) = %v, want ErrEmailTaken", err)
	}
}

func TestUserByGoogleID(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, store)
	user.GoogleID = "google-sub-12345"
	user.SignInMethod = account.SignInGoogle
	if err := store.UpdateUser(ctx, user); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	found, err := store.UserByGoogleID(ctx, "google-sub-12345")
	if err != nil {
		t.Fatalf("UserByGoogleID: %v", err)
	}
	if found.ID != user.ID {
		t.Errorf("ID = %q, want %q", found.ID, user.ID)
	}
	if found.SignInMethod != account.SignInGoogle {
		t.Errorf("SignInMethod = %q, want %q", found.SignInMethod, account.SignInGoogle)
	}

	if _, err := store.UserByGoogleID(ctx, "unknown"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UserByGoogleID(unknown) = %v, want ErrNotFound", err)
	}
}

func TestRecordSignIn(t *testing.T) {
	store, fake := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)

	fake.Advance(time.Hour)
	if err := store.RecordSignIn(ctx, user.ID); err != nil {
		t.Fatalf("RecordSignIn: %v", err)
	}

	updated, err := store.UserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("UserByID: %v", err)
	}
	if !updated.LastSignIn.Equal(fake.Now().UTC()) {
		t.Errorf("LastSignIn = %v, want %v", updated.LastSignIn, fake.Now().UTC())
	}

	if err := store.RecordSignIn(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("RecordSignIn(missing) = %v, want ErrNotFound", err)
	}
}

func TestResetTokenLifecycle(t *testing.T) {
	store, fake := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)

	first := &account.ResetToken{
		UserID:    user.ID,
		Token:     "1234",
		Kind:      account.ResetKindOTP,
		ExpiresAt: fake.Now().Add(10 * time.Minute),
	}
	if err := store.CreateResetToken(ctx, first); err != nil {
		t.Fatalf("CreateResetToken: %v", err)
	}

	token, err := store.ValidResetToken(ctx, user.ID, "1234", account.ResetKindOTP)
	if err != nil {
		t.Fatalf("ValidResetToken: %v", err)
	}
	if token.ID != first.ID {
		t.Errorf("token ID = %q, want %q", token.ID, first.ID)
	}

	// A new token of the same kind invalidates the old one.
	second := &account.ResetToken{
		UserID:    user.ID,
		Token:     "5678",
		Kind:      account.ResetKindOTP,
		ExpiresAt: fake.Now().Add(10 * time.Minute),
	}
	if err := store.CreateResetToken(ctx, second); err != nil {
		t.Fatalf("CreateResetToken: %v", err)
	}
	if _, err := store.ValidResetToken(ctx, user.ID, "1234", account.ResetKindOTP); !errors.Is(err, ErrNotFound) {
		t.Errorf("superseded token still valid, err = %v", err)
	}

	// Consuming the token makes it invalid.
	if err := store.MarkResetTokenUsed(ctx, second.ID); err != nil {
		t.Fatalf("MarkResetTokenUsed: %v", err)
	}
	if _, err := store.ValidResetToken(ctx, user.ID, "5678", account.ResetKindOTP); !errors.Is(err, ErrNotFound) {
		t.Errorf("used token still valid, err = %v", err)
	}
}

func TestResetTokenExpiryAndPurge(t *testing.T) {
	store, fake := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)

	token := &account.ResetToken{
		UserID:    user.ID,
		Token:     "1234",
		Kind:      account.ResetKindOTP,
		ExpiresAt: fake.Now().Add(10 * time.Minute),
	}
	if err := store.CreateResetToken(ctx, token); err != nil {
		t.Fatalf("CreateResetToken: %v", err)
	}

	fake.Advance(11 * time.Minute)
	if _, err := store.ValidResetToken(ctx, user.ID, "1234", account.ResetKindOTP); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired token still valid, err = %v", err)
	}

	purged, err := store.PurgeExpiredResetTokens(ctx)
	if err != nil {
		t.Fatalf("PurgeExpiredResetTokens: %v", err)
	}
	if purged != 1 {
		t.Errorf("purged = %d, want 1", purged)
	}
}
