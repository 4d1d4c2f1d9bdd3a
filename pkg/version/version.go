// Package version reports the commentdash build version.
package version

// version is set at build time with
// -ldflags "-X github.com/rshade/commentdash/pkg/version.version=v1.2.3".
var version = "dev" //nolint:gochecknoglobals // set by the linker

// GetVersion returns the build version, or "dev" for local builds.
func GetVersion() string {
	return version
}
