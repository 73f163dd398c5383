// Package buildinfo holds version metadata stamped in by the release build.
package buildinfo

import "fmt"

// Set via -ldflags "-X github.com/cleared-dev/tally/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String formats the version line shown by tally --version.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
