package version

// Version is the current version of the argo-backtest engine.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/rxtech-lab/argo-backtest/internal/version.Version=1.2.3"
// Development builds set it to "main", which skips engine version checks.
var Version = "v0.4.0"

// GetVersion returns the current version of the library.
func GetVersion() string {
	return Version
}
