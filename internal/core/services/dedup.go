package services

import "github.com/custodia-labs/wsimport/internal/core/domain"

// DedupContext maps coordinates to the libraries of one import call.
// It is owned by a single import call and never shared between calls.
type DedupContext struct {
	libraries map[string]*domain.Library
	order     []*domain.Library

	// missing holds coordinates already reported as unresolved.
	missing map[string]bool
}

// NewDedupContext creates an empty context.
func NewDedupContext() *DedupContext {
	return &DedupContext{
		libraries: make(map[string]*domain.Library),
		missing:   make(map[string]bool),
	}
}

// Lookup returns the library registered for a coordinate string.
func (c *DedupContext) Lookup(coordinate string) (*domain.Library, bool) {
	lib, ok := c.libraries[coordinate]
	return lib, ok
}

// Register adds a library under its coordinate.
// Returns false if the coordinate is already taken.
func (c *DedupContext) Register(lib *domain.Library) bool {
	key := lib.Coordinate.String()
	if _, ok := c.libraries[key]; ok {
		return false
	}
	c.libraries[key] = lib
	c.order = append(c.order, lib)
	return true
}

// Libraries returns the registered libraries in registration order.
func (c *DedupContext) Libraries() []*domain.Library {
	return append([]*domain.Library(nil), c.order...)
}

// Len returns the number of registered libraries.
func (c *DedupContext) Len() int {
	return len(c.order)
}

// markMissing records an unresolved coordinate.
// Returns true the first time a coordinate is marked.
func (c *DedupContext) markMissing(coordinate string) bool {
	if c.missing[coordinate] {
		return false
	}
	c.missing[coordinate] = true
	return true
}

func (c *DedupContext) isMissing(coordinate string) bool {
	return c.missing[coordinate]
}
