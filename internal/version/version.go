package version

import "fmt"

// Number is the released version, set at build time via ldflags.
var Number = "dev"

// These variables are set at build time via ldflags
var (
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the full version string.
func String() string {
	return fmt.Sprintf("brewtrack %s (commit: %s, built: %s)", Number, shortCommit(), BuildTime)
}

func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}
