// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

// Package validate holds the input rules shared by the auth handlers:
// email shape, password strength, display name bounds, and OTP format.
// The rules are deliberately bespoke: error messages are shown
// verbatim to the mobile client, so each check produces its own text.
package validate

import (
	"errors"
	"net/mail"
	"strings"
	"unicode"
)

const (
	minPasswordLength = 8
	minFullNameLength = 2
	maxFullNameLength = 255
	otpLength         = 4
)

// NormalizeEmail returns the canonical form of an email address:
// trimmed and lowercased. Every store write and lookup goes through
// this form, so case variants of one address resolve to one account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Email checks that the address parses and has a plausible domain.
// The definitive check is the verification mail actually arriving;
// this only rejects obvious garbage.
func Email(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("Email is required")
	}
	address, err := mail.ParseAddress(email)
	if err != nil || address.Address != email {
		return errors.New("Invalid email address")
	}
	at := strings.LastIndex(email, "@")
	if !strings.Contains(email[at+1:], ".") {
		return errors.New("Invalid email address")
	}
	return nil
}

// Password enforces the signup strength rules: at least 8 characters
// with an uppercase letter, a digit, and a special character.
func Password(password string) error {
	if password == "" {
		return errors.New("Password is required")
	}
	if len(password) < minPasswordLength {
		return errors.New("Password must be at least 8 characters long")
	}

	var hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(`!@#$%^&*(),.?":{}|<>`, r):
			hasSpecial = true
		}
	}
	if !hasUpper {
		return errors.New("Password must contain at least one uppercase letter")
	}
	if !hasDigit {
		return errors.New("Password must contain at least one number")
	}
	if !hasSpecial {
		return errors.New("Password must contain at least one special character")
	}
	return nil
}

// FullName checks display name length bounds after trimming.
func FullName(fullName string) error {
	trimmed := strings.TrimSpace(fullName)
	if trimmed == "" {
		return errors.New("Full name is required")
	}
	if len(trimmed) < minFullNameLength {
		return errors.New("Full name must be at least 2 characters long")
	}
	if len(trimmed) > maxFullNameLength {
		return errors.New("Full name must be less than 255 characters")
	}
	return nil
}

// OTP checks the reset-code format: exactly four ASCII digits.
func OTP(otp string) error {
	if otp == "" {
		return errors.New("OTP is required")
	}
	if len(otp) != otpLength {
		return errors.New("OTP must be 4 digits")
	}
	for _, r := range otp {
		if r < '0' || r > '9' {
			return errors.New("OTP must contain only numbers")
		}
	}
	return nil
}

// Sanitize trims whitespace, caps length at 255 bytes, and strips the
// characters that have bitten us in rendered contexts (<>"').
func Sanitize(text string) string {
	sanitized := strings.TrimSpace(text)
	if len(sanitized) > 255 {
		sanitized = sanitized[:255]
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '"', '\'':
			return -1
		}
		return r
	}, sanitized)
}
