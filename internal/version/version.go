// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

import "fmt"

// Injected at build time:
//
//	go build -ldflags "-X github.com/auxility/site/internal/version.version=v1.2.3"
var (
	version   = "dev"
	gitCommit = "unknown"
	buildTime = "unknown"
)

// Info contains build-time version information.
type Info struct {
	Version   string `json:"version"`    // Semantic version from git tags (e.g., "v1.2.3")
	GitCommit string `json:"git_commit"` // Short git commit hash
	BuildTime string `json:"build_time"` // RFC3339 build timestamp
}

// Current returns the version of the running binary.
func Current() Info {
	return Info{Version: version, GitCommit: gitCommit, BuildTime: buildTime}
}

// String formats the info for -version output.
func (i Info) String() string {
	return fmt.Sprintf("auxility %s (commit: %s, built: %s)", i.Version, i.GitCommit, i.BuildTime)
}
