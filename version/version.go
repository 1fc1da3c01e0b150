package version

import "fmt"

const (
	// Major is the application's major version number.
	Major = 0

	// Minor is the application's minor version number.
	Minor = 1

	// Patch is the application's patch version number.
	Patch = 0
)

// String returns the semver version string.
func String() string {
	return fmt.Sprintf("%d.%d.%d", Major, Minor, Patch)
}

// UserAgent returns the user agent string to hand to external services.
func UserAgent() string {
	return fmt.Sprintf("/paymentd:%s/", String())
}
