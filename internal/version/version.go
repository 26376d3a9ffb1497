// Package version exposes the build version injected at link time.
package version

var version string

// Value returns the linked version, or a development placeholder.
func Value() string {
	if version == "" {
		return "v0.0.0-dev"
	}
	return version
}
