// Package buildinfo carries version identifiers stamped in via -ldflags.
package buildinfo

// Defaults apply to plain `go build`; release builds override them.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String renders the version line shown by the CLI.
func String() string {
	return Version + " (commit: " + Commit + ", built: " + Date + ")"
}
