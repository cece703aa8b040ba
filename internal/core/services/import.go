package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/wsimport/internal/core/domain"
	"github.com/custodia-labs/wsimport/internal/core/ports/driving"
	"github.com/custodia-labs/wsimport/internal/logger"
)

// Ensure ImportService implements the interface.
var _ driving.ImportService = (*ImportService)(nil)

// ImportService runs the import pipeline: orchestrate, then merge.
type ImportService struct {
	orchestrator driving.ImportOrchestrator
	workspace    driving.WorkspaceService
	concurrency  int
}

// NewImportService creates an import service.
// concurrency bounds parallel folder imports; values below 1 mean 1.
func NewImportService(
	orchestrator driving.ImportOrchestrator,
	workspace driving.WorkspaceService,
	concurrency int,
) *ImportService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ImportService{
		orchestrator: orchestrator,
		workspace:    workspace,
		concurrency:  concurrency,
	}
}

// ImportFolder imports one folder and merges the result.
// When no strategy yields a graph the folder is merged as an empty
// contribution and the report is marked FellBack.
func (s *ImportService) ImportFolder(ctx context.Context, folder string) (*domain.FolderReport, error) {
	abs, err := filepath.Abs(folder)
	if err != nil {
		return nil, fmt.Errorf("resolve folder %s: %w", folder, err)
	}

	report := &domain.FolderReport{
		RunID:     uuid.NewString(),
		Folder:    abs,
		StartedAt: time.Now(),
	}
	logger.Section("Import " + abs)

	// 1. Run the strategy list
	result, err := s.orchestrator.Import(ctx, abs, nil)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", abs, err)
	}

	// 2. Fall back to an empty contribution
	graph := result.Graph
	if graph == nil {
		report.FellBack = true
		graph = domain.NewGraph()
		logger.ForFolder(abs).Warn("no importer applied, using empty workspace")
	}

	// 3. Merge into the shared store
	if err := s.workspace.Merge(ctx, abs, graph); err != nil {
		return nil, err
	}

	report.Strategy = result.Strategy
	report.Modules = len(graph.Modules)
	report.Libraries = len(graph.Libraries)
	report.Warnings = result.Warnings
	report.Unresolved = result.Unresolved
	report.Duration = time.Since(report.StartedAt)
	return report, nil
}

// ImportFolders imports folders concurrently, bounded by the configured
// concurrency. Each folder has its own dedup context; merges serialise on
// the store. The first cancellation or merge error stops the batch.
func (s *ImportService) ImportFolders(ctx context.Context, folders []string) ([]domain.FolderReport, error) {
	reports := make([]domain.FolderReport, len(folders))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, folder := range folders {
		g.Go(func() error {
			report, err := s.ImportFolder(gctx, folder)
			if err != nil {
				return err
			}
			reports[i] = *report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
