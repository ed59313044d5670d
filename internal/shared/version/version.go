// Package version carries build identity reported by the health endpoint
// and startup logs. Values are overridden at build time via
// -ldflags "-X sonar/internal/shared/version.Version=v1.2.3 ...".
package version

var (
	// Version is the release tag, or "dev" for untagged builds.
	Version = "dev"
	// Commit is the short git commit hash the binary was built from.
	Commit = ""
)

// String returns the human-readable build identity.
func String() string {
	if Commit == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}
