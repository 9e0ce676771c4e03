// Package buildinfo holds build-time metadata injected via -ldflags.
package buildinfo

// Version is the semantic version or tag for this build.
// Inject via: -X github.com/conv-showcase/assistant-webhook-go/internal/buildinfo.Version=...
var Version = ""

// Commit is the git commit SHA for this build.
// Inject via: -X github.com/conv-showcase/assistant-webhook-go/internal/buildinfo.Commit=...
var Commit = ""

// BuildDate is the RFC3339 build timestamp.
// Inject via: -X github.com/conv-showcase/assistant-webhook-go/internal/buildinfo.BuildDate=...
var BuildDate = ""

// Release returns a release identifier for error reporting: the version when
// set, falling back to the commit, then to "dev".
func Release() string {
	if Version != "" {
		return Version
	}
	if Commit != "" {
		return Commit
	}
	return "dev"
}
