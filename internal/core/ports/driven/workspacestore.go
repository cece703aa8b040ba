package driven

import (
	"context"

	"github.com/custodia-labs/wsimport/internal/core/domain"
)

// WorkspaceStore holds the shared workspace model.
// All writes go through Update, which serialises writers: one Update runs
// at a time and its function observes and mutates a consistent workspace.
type WorkspaceStore interface {
	// Update runs fn with exclusive access to the workspace.
	// Changes are committed only when fn returns nil.
	Update(ctx context.Context, fn func(ws *domain.Workspace) error) error

	// View runs fn with a read-only view of the workspace.
	// fn must not retain or mutate the workspace.
	View(ctx context.Context, fn func(ws *domain.Workspace) error) error

	// Close releases resources.
	Close() error
}
