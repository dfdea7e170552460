// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build information for RifleAxis binaries.
// The values come from the Go module metadata stamped into the binary,
// so release builds need no extra ldflags.
package version

import (
	"fmt"
	"runtime/debug"
)

// String returns a human-readable version for the running binary:
// the module version plus the VCS revision when available.
func String() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	version := info.Main.Version
	if version == "" || version == "(devel)" {
		version = "devel"
	}

	var revision, modified string
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			if setting.Value == "true" {
				modified = "+dirty"
			}
		}
	}
	if revision != "" {
		if len(revision) > 12 {
			revision = revision[:12]
		}
		return fmt.Sprintf("%s (%s%s)", version, revision, modified)
	}
	return version
}

// Print writes the binary name and version to stdout. Used by the
// --version flag before any logger exists.
func Print(binary string) {
	fmt.Printf("%s %s\n", binary, String())
}
