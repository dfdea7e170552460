// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment identifies the deployment type.
type Environment string

const (
	// Development is for local machines.
	Development Environment = "development"
	// Production is for deployed instances.
	Production Environment = "production"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "24h" or "10m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the master configuration for the RifleAxis backend.
type Config struct {
	// Environment identifies the deployment type.
	Environment Environment `yaml:"environment"`

	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Mail     MailConfig     `yaml:"mail"`
	Google   GoogleConfig   `yaml:"google"`

	// Per-environment overrides, applied after the base values.
	Development *Overrides `yaml:"development,omitempty"`
	Production  *Overrides `yaml:"production,omitempty"`
}

// Overrides contains the sections that can be overridden per
// environment.
type Overrides struct {
	Server   *ServerConfig   `yaml:"server,omitempty"`
	Database *DatabaseConfig `yaml:"database,omitempty"`
	Auth     *AuthConfig     `yaml:"auth,omitempty"`
	Mail     *MailConfig     `yaml:"mail,omitempty"`
	Google   *GoogleConfig   `yaml:"google,omitempty"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Address is the TCP listen address. Default ":8080".
	Address string `yaml:"address"`

	// ShutdownTimeout caps graceful-shutdown drain time.
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`

	// CORSOrigins lists allowed cross-origin origins. ["*"] allows
	// any origin (the development default).
	CORSOrigins []string `yaml:"cors_origins"`
}

// DatabaseConfig configures SQLite storage.
type DatabaseConfig struct {
	// Path is the SQLite database file. The parent directory must
	// exist.
	Path string `yaml:"path"`

	// PoolSize is the connection pool size. Zero means the
	// sqlitepool default.
	PoolSize int `yaml:"pool_size"`
}

// AuthConfig configures token issuance and the password reset flow.
type AuthConfig struct {
	// JWTSecret signs access and refresh tokens (HMAC-SHA256).
	// Overridable via RIFLEAXIS_JWT_SECRET.
	JWTSecret string `yaml:"jwt_secret"`

	// AccessTokenTTL is the access token lifetime. Default 24h.
	AccessTokenTTL Duration `yaml:"access_token_ttl"`

	// RefreshTokenTTL is the refresh token lifetime. Default 720h
	// (30 days).
	RefreshTokenTTL Duration `yaml:"refresh_token_ttl"`

	// OTPTTL is how long a password-reset OTP stays valid.
	// Default 10m.
	OTPTTL Duration `yaml:"otp_ttl"`

	// ResetTokenTTL is how long the post-OTP reset token stays
	// valid. Default 1h.
	ResetTokenTTL Duration `yaml:"reset_token_ttl"`
}

// MailConfig configures outbound SMTP.
type MailConfig struct {
	// Enabled controls whether mail is sent at all. When false the
	// mailer logs and drops messages (useful in development).
	Enabled bool `yaml:"enabled"`

	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`

	// Password is the SMTP credential. Overridable via
	// RIFLEAXIS_SMTP_PASSWORD.
	Password string `yaml:"password"`

	// Sender is the From address on outbound mail.
	Sender string `yaml:"sender"`
}

// GoogleConfig configures Google sign-in.
type GoogleConfig struct {
	// ClientID is the OAuth client ID that Google ID tokens must be
	// issued for. Empty disables Google sign-in.
	ClientID string `yaml:"client_id"`
}

// Default returns the base configuration that a loaded file merges
// into. The config file is still required; these exist so every field
// has a sensible zero value.
func Default() *Config {
	return &Config{
		Environment: Development,
		Server: ServerConfig{
			Address:         ":8080",
			ShutdownTimeout: Duration(10 * time.Second),
			CORSOrigins:     []string{"*"},
		},
		Database: DatabaseConfig{
			Path: "rifleaxis.db",
		},
		Auth: AuthConfig{
			AccessTokenTTL:  Duration(24 * time.Hour),
			RefreshTokenTTL: Duration(30 * 24 * time.Hour),
			OTPTTL:          Duration(10 * time.Minute),
			ResetTokenTTL:   Duration(time.Hour),
		},
		Mail: MailConfig{
			Host: "smtp.gmail.com",
			Port: 587,
		},
	}
}

// Load reads the file named by RIFLEAXIS_CONFIG. Fails if the
// variable is unset; there is no fallback path.
func Load() (*Config, error) {
	path := os.Getenv("RIFLEAXIS_CONFIG")
	if path == "" {
		return nil, fmt.Errorf("config: RIFLEAXIS_CONFIG not set; " +
			"point it at your rifleaxis.yaml or pass --config")
	}
	return LoadFile(path)
}

// LoadFile loads configuration from an explicit path, applies the
// matching environment section, then the secret environment
// variables, and validates the result.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()
	cfg.applySecretEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvironmentOverrides merges the section matching
// cfg.Environment over the base values.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *Overrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
	}
	if overrides == nil {
		return
	}
	if overrides.Server != nil {
		c.Server = *overrides.Server
	}
	if overrides.Database != nil {
		c.Database = *overrides.Database
	}
	if overrides.Auth != nil {
		c.Auth = *overrides.Auth
	}
	if overrides.Mail != nil {
		c.Mail = *overrides.Mail
	}
	if overrides.Google != nil {
		c.Google = *overrides.Google
	}
}

// applySecretEnv overlays secrets supplied through the environment.
func (c *Config) applySecretEnv() {
	if secret := os.Getenv("RIFLEAXIS_JWT_SECRET"); secret != "" {
		c.Auth.JWTSecret = secret
	}
	if password := os.Getenv("RIFLEAXIS_SMTP_PASSWORD"); password != "" {
		c.Mail.Password = password
	}
}

// Validate checks invariants that would otherwise surface as obscure
// runtime failures.
func (c *Config) Validate() error {
	switch c.Environment {
	case Development, Production:
	default:
		return fmt.Errorf("config: unknown environment %q", c.Environment)
	}
	if c.Server.Address == "" {
		return fmt.Errorf("config: server.address is required")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("config: database.path is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: auth.jwt_secret is required (file or RIFLEAXIS_JWT_SECRET)")
	}
	if c.Environment == Production && c.Auth.JWTSecret == "dev-secret" {
		return fmt.Errorf("config: refusing the development JWT secret in production")
	}
	if c.Auth.AccessTokenTTL <= 0 || c.Auth.RefreshTokenTTL <= 0 {
		return fmt.Errorf("config: token TTLs must be positive")
	}
	if c.Mail.Enabled {
		if c.Mail.Host == "" || c.Mail.Sender == "" {
			return fmt.Errorf("config: mail.host and mail.sender are required when mail is enabled")
		}
		if c.Mail.Port <= 0 || c.Mail.Port > 65535 {
			return fmt.Errorf("config: mail.port %d out of range", c.Mail.Port)
		}
	}
	return nil
}
