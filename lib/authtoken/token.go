// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

package authtoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rifleaxis-foundation/rifleaxis/lib/clock"
)

// Kind distinguishes access tokens from refresh tokens.
type Kind string

const (
	// KindAccess tokens authenticate API calls.
	KindAccess Kind = "access"
	// KindRefresh tokens are accepted only by POST /api/auth/refresh.
	KindRefresh Kind = "refresh"
)

// issuer is the iss claim on every minted token.
const issuer = "rifleaxis"

// Errors returned by Verify.
var (
	ErrInvalidToken = errors.New("authtoken: invalid token")
	ErrTokenExpired = errors.New("authtoken: token has expired")
	ErrWrongKind    = errors.New("authtoken: token kind does not match")
	ErrTokenRevoked = errors.New("authtoken: token has been revoked")
)

// Claims is the JWT payload. UserID duplicates the registered Subject
// claim for clients that read it by name.
type Claims struct {
	UserID    string `json:"user_id"`
	TokenType Kind   `json:"type"`
	jwt.RegisteredClaims
}

// Pair is the token bundle returned by signup, login, and Google
// sign-in. Field names match what the mobile client already parses.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Authority mints and verifies tokens with a shared HMAC secret.
type Authority struct {
	secret     []byte
	clock      clock.Clock
	accessTTL  time.Duration
	refreshTTL time.Duration
	blacklist  *Blacklist
}

// AuthorityConfig holds the parameters for NewAuthority.
type AuthorityConfig struct {
	// Secret is the HMAC-SHA256 signing key. Required.
	Secret string

	// AccessTTL is the access token lifetime. Required.
	AccessTTL time.Duration

	// RefreshTTL is the refresh token lifetime. Required.
	RefreshTTL time.Duration

	// Clock provides the current time. Required.
	Clock clock.Clock
}

// NewAuthority validates the config and returns an Authority with an
// empty revocation blacklist.
func NewAuthority(cfg AuthorityConfig) (*Authority, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("authtoken: Secret is required")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, fmt.Errorf("authtoken: token TTLs must be positive")
	}
	if cfg.Clock == nil {
		return nil, fmt.Errorf("authtoken: Clock is required")
	}
	return &Authority{
		secret:     []byte(cfg.Secret),
		clock:      cfg.Clock,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		blacklist:  NewBlacklist(),
	}, nil
}

// MintPair issues a fresh access + refresh token pair for a user.
func (a *Authority) MintPair(userID string) (Pair, error) {
	access, err := a.mint(userID, KindAccess, a.accessTTL)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := a.mint(userID, KindRefresh, a.refreshTTL)
	if err != nil {
		return Pair{}, err
	}
	return Pair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(a.accessTTL.Seconds()),
	}, nil
}

// MintAccess issues a new access token only, for the refresh flow.
func (a *Authority) MintAccess(userID string) (Pair, error) {
	access, err := a.mint(userID, KindAccess, a.accessTTL)
	if err != nil {
		return Pair{}, err
	}
	return Pair{
		AccessToken: access,
		ExpiresIn:   int64(a.accessTTL.Seconds()),
	}, nil
}

func (a *Authority) mint(userID string, kind Kind, ttl time.Duration) (string, error) {
	now := a.clock.Now()
	claims := Claims{
		UserID:    userID,
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("authtoken: signing %s token: %w", kind, err)
	}
	return signed, nil
}

// Verify parses and validates a raw token, enforcing signature,
// expiry (against the injected clock), kind, and revocation. Returns
// the claims on success.
func (a *Authority) Verify(raw string, want Kind) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(token *jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(func() time.Time { return a.clock.Now() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.TokenType != want {
		return nil, ErrWrongKind
	}
	if claims.UserID == "" || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	if a.blacklist.IsRevoked(claims.ID) {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Revoke blacklists a verified token until its natural expiry. Used
// by logout.
func (a *Authority) Revoke(claims *Claims) {
	if claims.ID == "" || claims.ExpiresAt == nil {
		return
	}
	a.blacklist.Revoke(claims.ID, claims.ExpiresAt.Time)
}

// PurgeRevoked drops blacklist entries whose tokens have expired on
// their own. Called from the server's periodic sweep.
func (a *Authority) PurgeRevoked() int {
	return a.blacklist.Cleanup(a.clock.Now())
}
