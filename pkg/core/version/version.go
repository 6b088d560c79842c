// ============================================================================
// recordkit - declarative records for tabular data
// ============================================================================
//
// Package:     version
// Description: Build version information, set through -ldflags at release
// Author:      msto63
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Build information, overridden with
// -ldflags "-X github.com/msto63/recordkit/pkg/core/version.Version=..."
var (
	Version   = "0.1.0"
	GitCommit = "development"
	BuildDate = "unknown"
)

// Info describes the running binary
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build information of the running binary
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Short returns "name vX.Y.Z"
func (i Info) Short(name string) string {
	return fmt.Sprintf("%s v%s", name, i.Version)
}

// String renders the multi-line block printed by the version command
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "  Git Commit: %s\n", i.GitCommit)
	fmt.Fprintf(&b, "  Build Date: %s\n", i.BuildDate)
	fmt.Fprintf(&b, "  Go Version: %s\n", i.GoVersion)
	fmt.Fprintf(&b, "  OS/Arch:    %s\n", i.Platform)
	return b.String()
}
