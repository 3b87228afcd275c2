package version

var (
	version string
	build   string
)

// Version returns version defined by -ldflags
func Version() string {
	return version
}

// Build returns build defined by -ldflags
func Build() string {
	return build
}

// Full returns version and build as a single printable string
func Full() string {
	if build == "" {
		return version
	}
	return version + "-" + build
}
