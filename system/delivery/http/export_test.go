package http

// ExtractVersion exports extractVersion for testing.
func ExtractVersion(ldFlagsValue string) (string, error) {
	return extractVersion(ldFlagsValue)
}
