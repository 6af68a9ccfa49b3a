package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the library semantic version (override with -ldflags).
	Version = "0.1.0"
	// GitCommit is the git SHA (inject via -ldflags at build time).
	GitCommit = "unknown"
)

// String returns a human-readable version string.
func String() string {
	return fmt.Sprintf("paymenthub-go %s (commit: %s, go: %s)", Version, GitCommit, runtime.Version())
}

// UserAgent identifies the library, platform and Go runtime to the API.
func UserAgent() string {
	return fmt.Sprintf("PaymentHub GOSDK/%s (%s; %s) GO (%s; %s)",
		Version, runtime.GOOS, runtime.GOARCH, runtime.Version(), runtime.Compiler)
}
