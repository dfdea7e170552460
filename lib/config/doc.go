// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the backend configuration from a single YAML
// file named by:
//   - the RIFLEAXIS_CONFIG environment variable, or
//   - the --config flag passed to the server binary.
//
// There is no automatic discovery. The file may contain development
// and production sections whose values override the base config when
// the environment matches. Secrets (JWT signing key, SMTP password)
// may additionally be supplied via environment variables so they stay
// out of the file; those are the only environment overrides.
package config
