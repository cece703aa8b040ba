package domain

import "strings"

// SDK is an installed development kit referenced by sdk edges.
type SDK struct {
	// Name is the identity used by sdk edges, e.g. "17".
	Name string

	// Version is the full version string, e.g. "17.0.2".
	Version string

	// HomePath is the installation directory.
	HomePath string
}

// MajorVersion normalises a version hint to its major release.
// Legacy "1.x" hints map to "x", so "1.8" and "8" compare equal.
func MajorVersion(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "JavaSE-")
	if strings.HasPrefix(v, "1.") {
		v = v[2:]
	}
	if i := strings.IndexAny(v, ".-+_"); i >= 0 {
		v = v[:i]
	}
	return v
}
