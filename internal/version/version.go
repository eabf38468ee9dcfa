package version

import (
	"fmt"
	"io"
	"runtime"
)

// Set at build time via -ldflags "-X github.com/NathanBartolo/echo/internal/version.Version=..."
var (
	App       = "Echo"
	Version   string
	GitCommit string
	BuildTime string
)

// String returns the release tag, or "dev" for local builds.
func String() string {
	if Version != "" {
		return Version
	}
	return "dev"
}

// ShortCommit trims the commit hash to seven characters.
func ShortCommit() string {
	if len(GitCommit) > 7 {
		return GitCommit[:7]
	}
	return GitCommit
}

// Print writes build information to w.
func Print(w io.Writer) {
	fmt.Fprintf(w, "%s version %s\n", App, String())
	if GitCommit != "" {
		fmt.Fprintf(w, "Git commit: %s\n", ShortCommit())
	}
	if BuildTime != "" {
		fmt.Fprintf(w, "Build time: %s\n", BuildTime)
	}
	fmt.Fprintf(w, "Go version: %s\n", runtime.Version())
	fmt.Fprintf(w, "Built for: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}
