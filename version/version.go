// Package version exposes the foundation's version and build metadata.
package version

// current is the semantic version, updated by release automation.
const current = "0.2.0"

// Injected at build time:
//
//	go build -ldflags "-X github.com/vixlabs/vixutil/version.gitHash=$(git rev-parse --short HEAD) \
//	                   -X 'github.com/vixlabs/vixutil/version.buildDate=$(date -u +%Y-%m-%dT%H:%M:%SZ)'"
var (
	gitHash   = "unknown"
	buildDate = "unknown"
)

// Version returns the semantic version, e.g. "0.2.0".
func Version() string {
	return current
}

// BuildInfo returns the version with build metadata, e.g.
// "v0.2.0 (abcdef1, 2026-08-28T10:00:00Z)".
func BuildInfo() string {
	return "v" + current + " (" + gitHash + ", " + buildDate + ")"
}
