package driving

import (
	"context"

	"github.com/custodia-labs/wsimport/internal/core/domain"
)

// ImportOrchestrator runs the registered import strategies on a folder.
type ImportOrchestrator interface {
	// Import tries each strategy in priority order and returns the first
	// graph produced. A result with a nil Graph means no strategy applied.
	// Returns an error wrapping domain.ErrImportCancelled on cancellation.
	Import(ctx context.Context, root string, onUnresolved func(coordinate string)) (*domain.ImportResult, error)

	// Strategies returns the strategy names in priority order.
	Strategies() []string
}

// ImportService imports folders into the shared workspace.
type ImportService interface {
	// ImportFolder imports one folder and merges its graph.
	// A folder no strategy can import is merged as an empty contribution.
	ImportFolder(ctx context.Context, folder string) (*domain.FolderReport, error)

	// ImportFolders imports several folders concurrently.
	// Reports are returned in the order of folders.
	ImportFolders(ctx context.Context, folders []string) ([]domain.FolderReport, error)
}
