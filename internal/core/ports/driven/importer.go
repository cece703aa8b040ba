package driven

import (
	"context"

	"github.com/custodia-labs/wsimport/internal/core/domain"
)

// UnresolvedFunc receives the coordinate string of a dependency whose
// artifact file could not be located. It is called once per dependency.
type UnresolvedFunc func(coordinate string)

// WarningFunc receives a non-fatal problem found while importing, such as
// a submodule that was skipped.
type WarningFunc func(message string)

// Importer is one build-system specific import strategy.
// The orchestrator tries importers in priority order until one yields a graph.
type Importer interface {
	// Name returns the importer identifier (e.g., "maven").
	Name() string

	// IsApplicable reports whether the folder looks like this importer's
	// build system. It must be cheap and free of side effects; typically a
	// marker-file existence check.
	IsApplicable(root string) bool

	// Import reads the folder and produces its entity graph.
	// Returns nil graph and nil error when, after a closer look, the folder
	// is not importable by this strategy.
	// Returns domain.ErrNotApplicable with the same meaning.
	// Returns a *domain.ImportError for fatal failures; context cancellation
	// is returned unchanged. onWarning may be nil.
	Import(
		ctx context.Context,
		root string,
		urls domain.URLResolver,
		onUnresolved UnresolvedFunc,
		onWarning WarningFunc,
	) (*domain.Graph, error)
}

// DescriptorReader reads module descriptors for one build system.
// It has no knowledge of the entity graph.
type DescriptorReader interface {
	// Name returns the build system identifier.
	Name() string

	// IsApplicable reports whether the root carries the build system's
	// marker file.
	IsApplicable(root string) bool

	// ReadModules walks the root descriptor and its submodules.
	// Submodule failures are returned in ReadResult.Failures. An unreadable
	// root or an empty walk is a *domain.ImportError.
	ReadModules(ctx context.Context, root string) (*domain.ReadResult, error)
}
