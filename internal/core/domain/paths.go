package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RootMacro replaces the import root in root-relative URLs.
const RootMacro = "$ROOT$"

// PathPolicy selects how filesystem paths are canonicalised into URLs.
type PathPolicy string

// Available path policies.
const (
	// PathAbsolute keeps the full host path: file:///abs/path.
	PathAbsolute PathPolicy = "absolute"

	// PathRootRelative replaces the import root with RootMacro. Paths
	// outside the root stay absolute.
	PathRootRelative PathPolicy = "root-relative"

	// PathFileName crops every path to its base name.
	PathFileName PathPolicy = "file-name"
)

// IsValid returns true if the path policy is recognised.
func (p PathPolicy) IsValid() bool {
	switch p {
	case PathAbsolute, PathRootRelative, PathFileName:
		return true
	default:
		return false
	}
}

// ParsePathPolicy parses a configured policy name.
// An empty name selects PathAbsolute.
func ParsePathPolicy(s string) (PathPolicy, error) {
	if s == "" {
		return PathAbsolute, nil
	}
	p := PathPolicy(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: path policy %q", ErrInvalidInput, s)
	}
	return p, nil
}

// URLResolver maps a filesystem path onto a model URL.
type URLResolver interface {
	URL(path string) string
}

// URLResolverFunc adapts a function to URLResolver.
type URLResolverFunc func(path string) string

// URL implements URLResolver.
func (f URLResolverFunc) URL(path string) string {
	return f(path)
}

// Resolver returns the URL resolver for an import rooted at root.
func (p PathPolicy) Resolver(root string) URLResolver {
	root = filepath.Clean(root)
	return URLResolverFunc(func(path string) string {
		path = filepath.Clean(path)
		switch p {
		case PathFileName:
			return "file://" + filepath.Base(path)
		case PathRootRelative:
			if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
				if rel == "." {
					return "file://" + RootMacro
				}
				return "file://" + RootMacro + "/" + filepath.ToSlash(rel)
			}
		}
		return "file://" + filepath.ToSlash(path)
	})
}
