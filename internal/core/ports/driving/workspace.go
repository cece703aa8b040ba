package driving

import (
	"context"

	"github.com/custodia-labs/wsimport/internal/core/domain"
)

// WorkspaceService manages the shared workspace model.
type WorkspaceService interface {
	// Merge replaces the folder's contribution with graph and resolves
	// inherited SDK edges across the whole workspace.
	Merge(ctx context.Context, folder string, graph *domain.Graph) error

	// Remove drops a folder's contribution.
	Remove(ctx context.Context, folder string) error

	// Graph returns a copy of the folder's contribution.
	Graph(ctx context.Context, folder string) (*domain.Graph, error)

	// Folders lists the contributing folders.
	Folders(ctx context.Context) ([]string, error)

	// DefaultSDK returns the workspace default SDK, if one was created.
	DefaultSDK(ctx context.Context) (*domain.SDK, error)
}
