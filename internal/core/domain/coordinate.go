package domain

import (
	"fmt"
	"strings"
)

// Coordinate identifies a library artifact.
// Its string form is the library deduplication key.
type Coordinate struct {
	GroupID    string
	ArtifactID string
	Version    string
}

// String returns the canonical group:artifact:version form.
func (c Coordinate) String() string {
	return c.GroupID + ":" + c.ArtifactID + ":" + c.Version
}

// IsZero reports whether no field is set.
func (c Coordinate) IsZero() bool {
	return c.GroupID == "" && c.ArtifactID == "" && c.Version == ""
}

// ParseCoordinate parses a group:artifact:version string.
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return Coordinate{}, fmt.Errorf("%w: coordinate %q", ErrInvalidInput, s)
	}
	return Coordinate{GroupID: parts[0], ArtifactID: parts[1], Version: parts[2]}, nil
}

// Scope is the visibility of a dependency edge.
type Scope string

// Dependency scopes.
const (
	ScopeCompile  Scope = "compile"
	ScopeTest     Scope = "test"
	ScopeProvided Scope = "provided"
	ScopeRuntime  Scope = "runtime"
)

// ParseScope maps a declared scope string onto the scope enum.
// Unrecognised or empty scopes default to compile; "system" is treated
// as provided.
func ParseScope(s string) Scope {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case ScopeTest:
		return ScopeTest
	case ScopeProvided, "system":
		return ScopeProvided
	case ScopeRuntime:
		return ScopeRuntime
	default:
		return ScopeCompile
	}
}

// IsValid reports whether the scope is one of the known values.
func (s Scope) IsValid() bool {
	switch s {
	case ScopeCompile, ScopeTest, ScopeProvided, ScopeRuntime:
		return true
	default:
		return false
	}
}
