// ABOUTME: Build and product identification
// ABOUTME: Version is overridden at link time with -ldflags "-X"
package version

// Version is the release string, "dev" for local builds
var Version = "dev"

const (
	// Product is the binary name shown in usage and logs
	Product = "toolbox"

	// Manufacturer is shown by the version command
	Manufacturer = "harperreed"
)

// String returns "toolbox <version>"
func String() string {
	return Product + " " + Version
}
