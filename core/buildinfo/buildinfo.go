package buildinfo

// These variables are intended to be set via -ldflags at build time:
//
//	-X 'github.com/aleRizzolo/SeaScan/core/buildinfo.Version=v1.2.3'
//	-X 'github.com/aleRizzolo/SeaScan/core/buildinfo.Commit=abcdef0'
//	-X 'github.com/aleRizzolo/SeaScan/core/buildinfo.Date=2026-08-30T12:00:00Z'
//
// Default values are useful for local dev.
var (
	// Version reports the semantic version or tag of the build.
	Version = "dev"
	// Commit reports the source control commit used for the build.
	Commit = "unknown"
	// Date reports the build timestamp.
	Date = "unknown"
)
