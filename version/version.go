// Package version carries build metadata injected with
// -ldflags "-X github.com/philipparndt/tetraview/version.Version=...".
package version

import "fmt"

// These variables are set via ldflags during build
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// GetVersion returns the version string
func GetVersion() string {
	return Version
}

// GetFullVersion returns the version with commit and build date for release builds
func GetFullVersion() string {
	if Version == "dev" {
		return "dev"
	}
	return fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate)
}
