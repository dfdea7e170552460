// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"net/http"

	"github.com/rifleaxis-foundation/rifleaxis/lib/authtoken"
	"github.com/rifleaxis-foundation/rifleaxis/lib/googleauth"
	"github.com/rifleaxis-foundation/rifleaxis/lib/password"
	"github.com/rifleaxis-foundation/rifleaxis/lib/schema/account"
	"github.com/rifleaxis-foundation/rifleaxis/lib/store"
	"github.com/rifleaxis-foundation/rifleaxis/lib/validate"
	"github.com/rifleaxis-foundation/rifleaxis/lib/webapi"
)

// authUser is the trimmed user shape embedded in token responses.
// The mobile client reads exactly these three fields after sign-in;
// the full profile comes from /api/auth/me.
type authUser struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// authData is the payload of every response that issues tokens.
type authData struct {
	User   authUser       `json:"user"`
	Tokens authtoken.Pair `json:"tokens"`
}

func newAuthData(user *account.User, tokens authtoken.Pair) authData {
	return authData{
		User: authUser{
			ID:       user.ID,
			FullName: user.FullName,
			Email:    user.Email,
		},
		Tokens: tokens,
	}
}

// decode parses the JSON request body into destination, writing the
// 422 response itself on failure. Callers bail out when it returns
// false.
func decode(writer http.ResponseWriter, request *http.Request, destination any) bool {
	if err := webapi.DecodeJSON(request, destination); err != nil {
		if errors.Is(err, webapi.ErrNotJSON) {
			webapi.ValidationError(writer, "Request must be JSON")
		} else {
			webapi.ValidationError(writer, "Invalid request body")
		}
		return false
	}
	return true
}

func (s *apiServer) handleSignup(writer http.ResponseWriter, request *http.Request) {
	var body account.SignupRequest
	if !decode(writer, request, &body) {
		return
	}

	if err := validate.FullName(body.FullName); err != nil {
		webapi.ValidationError(writer, err.Error())
		return
	}
	if err := validate.Email(body.Email); err != nil {
		webapi.ValidationError(writer, err.Error())
		return
	}
	if err := validate.Password(body.Password); err != nil {
		webapi.ValidationError(writer, err.Error())
		return
	}

	hash, err := password.Hash(body.Password)
	if err != nil {
		s.log(request).Error("hashing signup password", "error", err)
		webapi.ServerError(writer, "Registration failed")
		return
	}

	user := &account.User{
		FullName:     validate.Sanitize(body.FullName),
		Email:        validate.NormalizeEmail(body.Email),
		PasswordHash: hash,
		IsActive:     true,
		SignInMethod: account.SignInEmail,
	}
	if err := s.store.CreateUser(request.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			webapi.Error(writer, "Email is already registered")
			return
		}
		s.log(request).Error("creating user", "error", err)
		webapi.ServerError(writer, "Registration failed")
		return
	}

	tokens, err := s.authority.MintPair(user.ID)
	if err != nil {
		s.log(request).Error("minting signup tokens", "error", err)
		webapi.ServerError(writer, "Registration failed")
		return
	}
	if err := s.store.RecordSignIn(request.Context(), user.ID); err != nil {
		s.log(request).Error("recording first sign-in", "error", err, "userId", user.ID)
	}

	// Welcome mail is best effort and must not delay the response.
	logger := s.log(request)
	go func() {
		if err := s.mailer.SendWelcome(context.Background(), user.Email, user.FullName); err != nil {
			logger.Error("sending welcome mail", "error", err)
		}
	}()

	webapi.Success(writer, "Registration successful", newAuthData(user, tokens))
}

func (s *apiServer) handleLogin(writer http.ResponseWriter, request *http.Request) {
	var body account.LoginRequest
	if !decode(writer, request, &body) {
		return
	}

	if err := validate.Email(body.Email); err != nil {
		webapi.ValidationError(writer, err.Error())
		return
	}
	if body.Password == "" {
		webapi.ValidationError(writer, "Password is required")
		return
	}

	user, err := s.store.UserByEmail(request.Context(), validate.NormalizeEmail(body.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.Error(writer, "No user found with this email")
			return
		}
		s.log(request).Error("looking up login user", "error", err)
		webapi.ServerError(writer, "Login failed")
		return
	}
	if !user.IsActive {
		webapi.Error(writer, "User account has been disabled")
		return
	}
	if !password.Verify(user.PasswordHash, body.Password) {
		webapi.Error(writer, "Incorrect password")
		return
	}

	tokens, err := s.authority.MintPair(user.ID)
	if err != nil {
		s.log(request).Error("minting login tokens", "error", err)
		webapi.ServerError(writer, "Login failed")
		return
	}
	if err := s.store.RecordSignIn(request.Context(), user.ID); err != nil {
		s.log(request).Error("recording sign-in", "error", err, "userId", user.ID)
	}

	webapi.Success(writer, "Login successful", newAuthData(user, tokens))
}

func (s *apiServer) handleGoogleSignIn(writer http.ResponseWriter, request *http.Request) {
	var body account.GoogleSignInRequest
	if !decode(writer, request, &body) {
		return
	}
	if body.GoogleToken == "" {
		webapi.ValidationError(writer, "Google token is required")
		return
	}
	if s.google == nil {
		webapi.Error(writer, "Google sign-in is not available")
		return
	}

	profile, err := s.google.Verify(request.Context(), body.GoogleToken)
	if err != nil {
		webapi.Error(writer, "Invalid Google token")
		return
	}

	user, err := s.googleUser(request.Context(), profile)
	if err != nil {
		s.log(request).Error("resolving google user", "error", err)
		webapi.ServerError(writer, "Google sign-in failed")
		return
	}
	if !user.IsActive {
		webapi.Error(writer, "User account has been disabled")
		return
	}

	tokens, err := s.authority.MintPair(user.ID)
	if err != nil {
		s.log(request).Error("minting google sign-in tokens", "error", err)
		webapi.ServerError(writer, "Google sign-in failed")
		return
	}
	if err := s.store.RecordSignIn(request.Context(), user.ID); err != nil {
		s.log(request).Error("recording sign-in", "error", err, "userId", user.ID)
	}

	webapi.Success(writer, "Google sign-in successful", newAuthData(user, tokens))
}

// googleUser finds or creates the account for a verified Google
// profile. An existing account with the same email is linked to the
// Google identity rather than duplicated.
func (s *apiServer) googleUser(ctx context.Context, profile *googleauth.Profile) (*account.User, error) {
	user, err := s.store.UserByGoogleID(ctx, profile.Subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	email := validate.NormalizeEmail(profile.Email)
	user, err = s.store.UserByEmail(ctx, email)
	if err == nil {
		user.GoogleID = profile.Subject
		user.SignInMethod = account.SignInGoogle
		user.EmailVerified = true
		if user.PhotoURL == "" && profile.PictureURL != "" {
			user.PhotoURL = profile.PictureURL
		}
		if err := s.store.UpdateUser(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	fullName := profile.FullName
	if fullName == "" {
		fullName = "Unknown User"
	}
	user = &account.User{
		FullName:      fullName,
		Email:         email,
		GoogleID:      profile.Subject,
		EmailVerified: true,
		IsActive:      true,
		PhotoURL:      profile.PictureURL,
		SignInMethod:  account.SignInGoogle,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *apiServer) handleForgotPassword(writer http.ResponseWriter, request *http.Request) {
	var body account.ForgotPasswordRequest
	if !decode(writer, request, &body) {
		return
	}
	if err := validate.Email(body.Email); err != nil {
		webapi.ValidationError(writer, err.Error())
		return
	}

	user, err := s.store.UserByEmail(request.Context(), validate.NormalizeEmail(body.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Do not reveal whether the account exists.
			webapi.Success(writer, "If an account with this email exists, you will receive a password reset code", nil)
			return
		}
		s.log(request).Error("looking up reset user", "error", err)
		webapi.ServerError(writer, "Failed to process password reset")
		return
	}
	if !user.IsActive {
		webapi.Error(writer, "User account has been disabled")
		return
	}

	otp, err := generateOTP()
	if err != nil {
		s.log(request).Error("generating OTP", "error", err)
		webapi.ServerError(writer, "Failed to process password reset")
		return
	}

	token := &account.ResetToken{
		UserID:    user.ID,
		Token:     otp,
		Kind:      account.ResetKindOTP,
		ExpiresAt: s.clock.Now().Add(s.otpTTL),
	}
	if err := s.store.CreateResetToken(request.Context(), token); err != nil {
		s.log(request).Error("storing reset OTP", "error", err)
		webapi.ServerError(writer, "Failed to process password reset")
		return
	}

	if err := s.mailer.SendPasswordResetOTP(request.Context(), user.Email, user.FullName, otp); err != nil {
		s.log(request).Error("sending reset OTP mail", "error", err)
		webapi.Error(writer, "Failed to send reset email")
		return
	}

	webapi.Success(writer, "Password reset code sent to your email", nil)
}

func (s *apiServer) handleVerifyOTP(writer http.ResponseWriter, request *http.Request) {
	var body account.VerifyOTPRequest
	if !decode(writer, request, &body) {
		return
	}
	if err := validate.Email(body.Email); err != nil {
		webapi.ValidationError(writer, err.Error())
		return
	}
	if err := validate.OTP(body.OTP); err != nil {
		webapi.ValidationError(writer, err.Error())
		return
	}

	user, err := s.store.UserByEmail(request.Context(), validate.NormalizeEmail(body.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.Error(writer, "User not found")
			return
		}
		s.log(request).Error("looking up OTP user", "error", err)
		webapi.ServerError(writer, "OTP verification failed")
		return
	}

	otpToken, err := s.store.ValidResetToken(request.Context(), user.ID, body.OTP, account.ResetKindOTP)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.Error(writer, "Invalid or expired OTP")
			return
		}
		s.log(request).Error("checking OTP", "error", err)
		webapi.ServerError(writer, "OTP verification failed")
		return
	}
	if err := s.store.MarkResetTokenUsed(request.Context(), otpToken.ID); err != nil {
		s.log(request).Error("consuming OTP", "error", err)
		webapi.ServerError(writer, "OTP verification failed")
		return
	}

	resetValue, err := generateResetToken()
	if err != nil {
		s.log(request).Error("generating reset token", "error", err)
		webapi.ServerError(writer, "OTP verification failed")
		return
	}
	resetToken := &account.ResetToken{
		UserID:    user.ID,
		Token:     resetValue,
		Kind:      account.ResetKindReset,
		ExpiresAt: s.clock.Now().Add(s.resetTokenTTL),
	}
	if err := s.store.CreateResetToken(request.Context(), resetToken); err != nil {
		s.log(request).Error("storing reset token", "error", err)
		webapi.ServerError(writer, "OTP verification failed")
		return
	}

	webapi.Success(writer, "OTP verified successfully", map[string]string{
		"resetToken": resetValue,
	})
}

func (s *apiServer) handleResetPassword(writer http.ResponseWriter, request *http.Request) {
	var body account.ResetPasswordRequest
	if !decode(writer, request, &body) {
		return
	}
	if err := validate.Email(body.Email); err != nil {
		webapi.ValidationError(writer, err.Error())
		return
	}
	if body.ResetToken == "" {
		webapi.ValidationError(writer, "Reset token is required")
		return
	}
	if body.NewPassword == "" {
		webapi.ValidationError(writer, "New password is required")
		return
	}
	if err := validate.Password(body.NewPassword); err != nil {
		webapi.ValidationError(writer, err.Error())
		return
	}

	user, err := s.store.UserByEmail(request.Context(), validate.NormalizeEmail(body.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.Error(writer, "User not found")
			return
		}
		s.log(request).Error("looking up reset user", "error", err)
		webapi.ServerError(writer, "Password reset failed")
		return
	}

	token, err := s.store.ValidResetToken(request.Context(), user.ID, body.ResetToken, account.ResetKindReset)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.Error(writer, "Invalid or expired reset token")
			return
		}
		s.log(request).Error("checking reset token", "error", err)
		webapi.ServerError(writer, "Password reset failed")
		return
	}

	hash, err := password.Hash(body.NewPassword)
	if err != nil {
		s.log(request).Error("hashing new password", "error", err)
		webapi.ServerError(writer, "Password reset failed")
		return
	}
	user.PasswordHash = hash
	if err := s.store.UpdateUser(request.Context(), user); err != nil {
		s.log(request).Error("updating password", "error", err)
		webapi.ServerError(writer, "Password reset failed")
		return
	}
	if err := s.store.MarkResetTokenUsed(request.Context(), token.ID); err != nil {
		s.log(request).Error("consuming reset token", "error", err)
		webapi.ServerError(writer, "Password reset failed")
		return
	}

	webapi.Success(writer, "Password reset successfully", nil)
}

func (s *apiServer) handleCurrentUser(writer http.ResponseWriter, request *http.Request) {
	user, err := s.store.UserByID(request.Context(), userIDFrom(request))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.Error(writer, "User not found")
			return
		}
		s.log(request).Error("looking up current user", "error", err)
		webapi.ServerError(writer, "Failed to get user information")
		return
	}
	if !user.IsActive {
		webapi.Error(writer, "User account has been disabled")
		return
	}

	webapi.Success(writer, "User retrieved successfully", user.Public())
}

func (s *apiServer) handleRefresh(writer http.ResponseWriter, request *http.Request) {
	tokens, err := s.authority.MintAccess(userIDFrom(request))
	if err != nil {
		s.log(request).Error("refreshing access token", "error", err)
		webapi.ServerError(writer, "Token refresh failed")
		return
	}

	webapi.Success(writer, "Token refreshed successfully", map[string]any{
		"tokens": tokens,
	})
}

func (s *apiServer) handleLogout(writer http.ResponseWriter, request *http.Request) {
	s.authority.Revoke(claimsFrom(request.Context()))
	webapi.Success(writer, "Logged out successfully", nil)
}

// generateOTP returns a four digit reset code with a uniform
// distribution, including leading zeros.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("generating OTP: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

// generateResetToken returns the long-form token minted after OTP
// verification: 32 random bytes, URL-safe base64.
func generateResetToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generating reset token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
