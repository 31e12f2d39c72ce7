// Package version exposes the build version of footprint.
package version

// version is set at build time:
//
//	go build -ldflags "-X github.com/rshade/footprint/pkg/version.version=v1.2.3"
//
//nolint:gochecknoglobals // Set by the linker.
var version = "dev"

// GetVersion returns the build version, "dev" for local builds.
func GetVersion() string {
	return version
}
