// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeConfig writes a YAML config file into a temp directory and
// returns its path.
func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rifleaxis.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

const minimalConfig = `
environment: development
database:
  path: /tmp/rifleaxis-test.db
auth:
  jwt_secret: test-secret
`

func TestLoadFileDefaults(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.Server.Address != ":8080" {
		t.Errorf("Server.Address = %q, want %q", cfg.Server.Address, ":8080")
	}
	if got := cfg.Auth.AccessTokenTTL.Std(); got != 24*time.Hour {
		t.Errorf("AccessTokenTTL = %v, want 24h", got)
	}
	if got := cfg.Auth.RefreshTokenTTL.Std(); got != 30*24*time.Hour {
		t.Errorf("RefreshTokenTTL = %v, want 720h", got)
	}
	if got := cfg.Auth.OTPTTL.Std(); got != 10*time.Minute {
		t.Errorf("OTPTTL = %v, want 10m", got)
	}
}

func TestLoadFileParsesDurations(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, `
environment: development
database:
  path: /tmp/test.db
auth:
  jwt_secret: test-secret
  access_token_ttl: 2h
  otp_ttl: 5m
`))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got := cfg.Auth.AccessTokenTTL.Std(); got != 2*time.Hour {
		t.Errorf("AccessTokenTTL = %v, want 2h", got)
	}
	if got := cfg.Auth.OTPTTL.Std(); got != 5*time.Minute {
		t.Errorf("OTPTTL = %v, want 5m", got)
	}
}

func TestLoadFileRejectsBadDuration(t *testing.T) {
	_, err := LoadFile(writeConfig(t, `
environment: development
database:
  path: /tmp/test.db
auth:
  jwt_secret: s
  access_token_ttl: "yesterday"
`))
	if err == nil {
		t.Fatal("LoadFile with invalid duration = nil error, want error")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, `
environment: production
database:
  path: /tmp/base.db
auth:
  jwt_secret: prod-secret
production:
  database:
    path: /var/lib/rifleaxis/rifleaxis.db
`))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Database.Path != "/var/lib/rifleaxis/rifleaxis.db" {
		t.Errorf("Database.Path = %q, want production override", cfg.Database.Path)
	}
}

func TestOverridesForOtherEnvironmentIgnored(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, `
environment: development
database:
  path: /tmp/base.db
auth:
  jwt_secret: s
production:
  database:
    path: /var/lib/rifleaxis/rifleaxis.db
`))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Database.Path != "/tmp/base.db" {
		t.Errorf("Database.Path = %q, want base value", cfg.Database.Path)
	}
}

func TestSecretEnvOverride(t *testing.T) {
	t.Setenv("RIFLEAXIS_JWT_SECRET", "from-env")
	cfg, err := LoadFile(writeConfig(t, `
environment: development
database:
  path: /tmp/test.db
auth:
  jwt_secret: from-file
`))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Errorf("JWTSecret = %q, want env override", cfg.Auth.JWTSecret)
	}
}

func TestLoadRequiresEnvVariable(t *testing.T) {
	t.Setenv("RIFLEAXIS_CONFIG", "")
	if _, err := Load(); err == nil {
		t.Fatal("Load without RIFLEAXIS_CONFIG = nil error, want error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{
			name: "missing_jwt_secret",
			contents: `
environment: development
database:
  path: /tmp/test.db
`,
		},
		{
			name: "missing_database_path",
			contents: `
environment: development
database:
  path: ""
auth:
  jwt_secret: s
`,
		},
		{
			name: "unknown_environment",
			contents: `
environment: staging
database:
  path: /tmp/test.db
auth:
  jwt_secret: s
`,
		},
		{
			name: "dev_secret_in_production",
			contents: `
environment: production
database:
  path: /tmp/test.db
auth:
  jwt_secret: dev-secret
`,
		},
		{
			name: "mail_enabled_without_sender",
			contents: `
environment: development
database:
  path: /tmp/test.db
auth:
  jwt_secret: s
mail:
  enabled: true
  host: smtp.example.com
  port: 587
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFile(writeConfig(t, tt.contents)); err == nil {
				t.Error("LoadFile = nil error, want validation error")
			}
		})
	}
}
