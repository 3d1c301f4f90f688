// Package version carries build information injected at link time.
package version

import "fmt"

// Build information set by ldflags:
//
//	-X github.com/arthur-debert/omnipak/internal/version.Version=v1.2.3
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String returns a one-line summary of the build.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
