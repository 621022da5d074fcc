// Package version provides build-time version information.
//
// Variables are set at build time via ldflags:
//
//	go build -ldflags "-X github.com/rodriguescarson/cfkit/internal/version.Version=0.3.0 \
//	                   -X github.com/rodriguescarson/cfkit/internal/version.Commit=$(git rev-parse --short HEAD)" \
//	    ./cmd/cfkit
package version

// Build-time variables (set via ldflags)
var (
	Version = "dev"
	Commit  = "unknown"
)

// String returns a formatted version string.
func String() string {
	return Version + " (" + Commit + ")"
}

// UserAgent is sent with every outbound HTTP request.
func UserAgent() string {
	return "cfkit/" + Version
}
