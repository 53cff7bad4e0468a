// Package build holds build-time information.
package build

// These default to development values and can be overwritten by linker flags, e.g.
// -ldflags "-X github.com/emdiet/popl/internal/build.Version=v1.2.0".
var (
	// Version is the application version.
	Version = "dev"
	// Commit is the VCS revision the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)

// Info returns a one-line description of the build.
func Info() string {
	return Version + " (commit " + Commit + ", built " + Date + ")"
}
