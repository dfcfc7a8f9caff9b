// Package buildinfo holds version information injected at build time via ldflags:
//
//	-X github.com/automute/automute/internal/buildinfo.Version=1.4.0
package buildinfo

var (
	Version    = "dev"
	Codename   = "Hush"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)
