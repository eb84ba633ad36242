// Package version holds the archmap build metadata injected via ldflags.
package version

// Overridden at build time:
// go build -ldflags "-X .../internal/version.Version=v1.2.3 -X .../internal/version.Commit=$(git rev-parse --short HEAD)"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
