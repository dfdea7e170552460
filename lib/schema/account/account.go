// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

package account

import "time"

// Sign-in methods recorded on a user row.
const (
	SignInEmail  = "email"
	SignInGoogle = "google"
)

// User is a user account. PasswordHash and GoogleID never leave the
// server; the wire shape is produced by Public.
type User struct {
	ID            string
	FullName      string
	Email         string
	PasswordHash  string
	GoogleID      string
	EmailVerified bool
	IsActive      bool
	PhotoURL      string
	SignInMethod  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	LastSignIn    time.Time
}

// PublicUser is the user shape returned to clients.
type PublicUser struct {
	ID            string  `json:"id"`
	FullName      string  `json:"fullName"`
	Email         string  `json:"email"`
	EmailVerified bool    `json:"emailVerified"`
	PhotoURL      *string `json:"photoURL"`
	SignInMethod  string  `json:"signInMethod"`
	CreatedAt     *string `json:"createdAt"`
	LastSignIn    *string `json:"lastSignIn"`
}

// Public strips the server-only fields for a JSON response.
func (u *User) Public() PublicUser {
	public := PublicUser{
		ID:            u.ID,
		FullName:      u.FullName,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		SignInMethod:  u.SignInMethod,
	}
	if u.PhotoURL != "" {
		public.PhotoURL = &u.PhotoURL
	}
	if !u.CreatedAt.IsZero() {
		formatted := u.CreatedAt.UTC().Format(time.RFC3339)
		public.CreatedAt = &formatted
	}
	if !u.LastSignIn.IsZero() {
		formatted := u.LastSignIn.UTC().Format(time.RFC3339)
		public.LastSignIn = &formatted
	}
	return public
}

// SignupRequest is the payload for POST /api/auth/signup.
type SignupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleSignInRequest is the payload for POST /api/auth/google-signin.
type GoogleSignInRequest struct {
	GoogleToken string `json:"googleToken"`
}

// ForgotPasswordRequest is the payload for POST /api/auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest is the payload for POST /api/auth/verify-otp.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ResetPasswordRequest is the payload for POST /api/auth/reset-password.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	ResetToken  string `json:"resetToken"`
	NewPassword string `json:"newPassword"`
}

// ResetToken is a password reset credential: either the short OTP the
// user types into the app, or the longer token minted after the OTP
// is verified. A token is single use.
type ResetToken struct {
	ID        string
	UserID    string
	Token     string
	Kind      string
	Used      bool
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Reset token kinds.
const (
	ResetKindOTP   = "otp"
	ResetKindReset = "reset"
)
