package archive

import "strings"

// SanitizePrefix normalizes the prefix applied to every archive member.
// The result always ends with exactly one trailing slash and never has a
// leading one; the empty prefix normalizes to the root prefix "/".
//
//	SanitizePrefix("")         == "/"
//	SanitizePrefix("foo/")     == "foo/"
//	SanitizePrefix("/foo/bar") == "foo/bar/"
func SanitizePrefix(prefix string) string {
	if prefix != "" {
		return strings.Trim(prefix, "/") + "/"
	}
	return "/"
}

// AdjustSubmodulePath strips a leading "./" (exactly those two
// characters) from a submodule path as recorded by the backend; any other
// path is returned unmodified. The archive-internal prefix for a
// submodule is always "<outer-prefix><adjusted-path>/".
func AdjustSubmodulePath(path string) string {
	if strings.HasPrefix(path, "./") {
		return path[2:]
	}
	return path
}
