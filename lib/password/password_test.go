// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

package password

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("Str0ng!pass")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("hash = %q, want bcrypt format", hash)
	}

	if !Verify(hash, "Str0ng!pass") {
		t.Error("Verify with correct password = false, want true")
	}
	if Verify(hash, "Wrong!pass1") {
		t.Error("Verify with wrong password = true, want false")
	}
}

func TestHashesAreSalted(t *testing.T) {
	first, err := Hash("Str0ng!pass")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	second, err := Hash("Str0ng!pass")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password are identical; salt missing")
	}
}

func TestEmptyInputs(t *testing.T) {
	if _, err := Hash(""); err == nil {
		t.Error("Hash(\"\") = nil error, want error")
	}
	if Verify("", "anything") {
		t.Error("Verify with empty hash = true, want false (Google-only account)")
	}
	hash, _ := Hash("Str0ng!pass")
	if Verify(hash, "") {
		t.Error("Verify with empty password = true, want false")
	}
}
