package docsync

import (
	"fmt"
	"runtime"
)

var (
	// version is set via ldflags during release builds.
	// For development builds, this will show "dev"
	version = "dev"
	// commit is the short git hash of the build, set via ldflags
	commit = "unknown"
)

// Version returns the compiled version or 'dev' if run from source
func Version() string {
	return version
}

// Commit returns the git commit the binary was built from, or 'unknown'
func Commit() string {
	return commit
}

// UserAgent returns the User-Agent string sent with every HTTP request
func UserAgent() string {
	return fmt.Sprintf("docsync/%s", version)
}

// BuildInfo returns a multi-line summary of the build metadata.
func BuildInfo() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nGo Version: %s", version, commit, runtime.Version())
}
