// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

package validate

import (
	"strings"
	"testing"
)

func TestEmail(t *testing.T) {
	valid := []string{
		"shooter@example.com",
		"first.last@sub.example.co.uk",
		"a+b@example.org",
	}
	for _, email := range valid {
		if err := Email(email); err != nil {
			t.Errorf("Email(%q) = %v, want nil", email, err)
		}
	}

	invalid := []string{
		"",
		"not-an-email",
		"missing@domain",
		"@example.com",
		"two@@example.com",
		"Display Name <someone@example.com>",
	}
	for _, email := range invalid {
		if err := Email(email); err == nil {
			t.Errorf("Email(%q) = nil, want error", email)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"shooter@example.com", "shooter@example.com"},
		{"Shooter@Example.COM", "shooter@example.com"},
		{"  Shooter@example.com  ", "shooter@example.com"},
	}
	for _, test := range tests {
		if got := NormalizeEmail(test.in); got != test.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantPart string // empty means valid
	}{
		{"valid", "Str0ng!pass", ""},
		{"empty", "", "required"},
		{"too_short", "Ab1!xyz", "8 characters"},
		{"no_uppercase", "weak1pass!", "uppercase"},
		{"no_digit", "Weakpass!!", "number"},
		{"no_special", "Weakpass11", "special"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Password(tt.password)
			if tt.wantPart == "" {
				if err != nil {
					t.Errorf("Password(%q) = %v, want nil", tt.password, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Password(%q) = nil, want error containing %q", tt.password, tt.wantPart)
			}
			if !strings.Contains(err.Error(), tt.wantPart) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantPart)
			}
		})
	}
}

func TestFullName(t *testing.T) {
	if err := FullName("Ana Marks"); err != nil {
		t.Errorf("FullName valid = %v", err)
	}
	if err := FullName("  "); err == nil {
		t.Error("FullName(blank) = nil, want error")
	}
	if err := FullName("A"); err == nil {
		t.Error("FullName(1 char) = nil, want error")
	}
	if err := FullName(strings.Repeat("x", 300)); err == nil {
		t.Error("FullName(300 chars) = nil, want error")
	}
}

func TestOTP(t *testing.T) {
	if err := OTP("0417"); err != nil {
		t.Errorf("OTP(0417) = %v, want nil", err)
	}
	for _, otp := range []string{"", "123", "12345", "12a4", "....", "１２３４"} {
		if err := OTP(otp); err == nil {
			t.Errorf("OTP(%q) = nil, want error", otp)
		}
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  plain  ", "plain"},
		{`<script>alert("x")</script>`, "scriptalert(x)/script"},
		{"O'Neill", "ONeill"},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	long := strings.Repeat("a", 400)
	if got := Sanitize(long); len(got) != 255 {
		t.Errorf("Sanitize(long) length = %d, want 255", len(got))
	}
}
