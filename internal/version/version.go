// ABOUTME: Version and product identity constants
// ABOUTME: Stamped into logs, mDNS TXT records and the control API
package version

const (
	// Version is the semantic version of this build.
	Version = "0.3.0"

	// Product is the human-readable product name.
	Product = "Binaural Engine"

	// Manufacturer identifies the project publishing this software.
	Manufacturer = "Binaural Lab"
)

// UserAgent returns the identifier used by outbound HTTP clients.
func UserAgent() string {
	return "binaural-go/" + Version
}
