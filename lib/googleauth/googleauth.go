// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

// Package googleauth verifies Google ID tokens presented by the
// mobile client's Google sign-in flow and extracts the profile fields
// the account service needs.
package googleauth

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"
)

// ErrInvalidToken is returned when the ID token fails signature,
// audience, expiry, or issuer checks.
var ErrInvalidToken = errors.New("googleauth: invalid Google ID token")

// Profile is the subset of ID token claims the service consumes.
type Profile struct {
	// Subject is Google's stable account identifier (the sub claim).
	Subject string

	// Email is the account email, lowercased by Google.
	Email string

	// EmailVerified reports whether Google has verified the email.
	EmailVerified bool

	// FullName is the display name, possibly empty.
	FullName string

	// PictureURL is the avatar URL, possibly empty.
	PictureURL string
}

// Verifier validates a raw Google ID token. Handlers depend on this
// interface so tests can substitute a fake.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Profile, error)
}

// googleVerifier validates tokens against Google's published JWKS.
type googleVerifier struct {
	clientID string
}

// New returns a Verifier that accepts tokens minted for the given
// OAuth client ID.
func New(clientID string) (Verifier, error) {
	if clientID == "" {
		return nil, fmt.Errorf("googleauth: client ID is required")
	}
	return &googleVerifier{clientID: clientID}, nil
}

func (v *googleVerifier) Verify(ctx context.Context, rawToken string) (*Profile, error) {
	payload, err := idtoken.Validate(ctx, rawToken, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return nil, fmt.Errorf("%w: unexpected issuer %q", ErrInvalidToken, payload.Issuer)
	}
	if payload.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", ErrInvalidToken)
	}

	profile := &Profile{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		profile.Email = email
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok {
		profile.EmailVerified = verified
	}
	if name, ok := payload.Claims["name"].(string); ok {
		profile.FullName = name
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		profile.PictureURL = picture
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("%w: token has no email claim", ErrInvalidToken)
	}
	return profile, nil
}
