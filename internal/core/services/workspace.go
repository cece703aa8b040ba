package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/wsimport/internal/core/domain"
	"github.com/custodia-labs/wsimport/internal/core/ports/driven"
	"github.com/custodia-labs/wsimport/internal/core/ports/driving"
	"github.com/custodia-labs/wsimport/internal/logger"
)

// Ensure WorkspaceService implements the interface.
var _ driving.WorkspaceService = (*WorkspaceService)(nil)

// WorkspaceService merges imported graphs into the shared store and
// resolves inherited SDK placeholders.
type WorkspaceService struct {
	store driven.WorkspaceStore
	sdks  driven.SDKLocator
}

// NewWorkspaceService creates a workspace service.
// sdks may be nil, in which case inherited SDK edges stay unresolved.
func NewWorkspaceService(store driven.WorkspaceStore, sdks driven.SDKLocator) *WorkspaceService {
	return &WorkspaceService{
		store: store,
		sdks:  sdks,
	}
}

// Merge replaces the folder's contribution with a copy of graph, then
// resolves inherited SDK edges of every module in the store. Both steps
// run inside one store update so concurrent merges never interleave.
func (s *WorkspaceService) Merge(ctx context.Context, folder string, graph *domain.Graph) error {
	if err := ctx.Err(); err != nil {
		return cancelled(err)
	}
	if graph == nil {
		graph = domain.NewGraph()
	}
	if err := graph.Validate(); err != nil {
		return fmt.Errorf("validate graph for %s: %w", folder, err)
	}
	snapshot := graph.Clone()

	err := s.store.Update(ctx, func(ws *domain.Workspace) error {
		ws.Replace(folder, snapshot)
		return s.resolveInheritedSDKs(ws)
	})
	if err != nil {
		if isCancellation(err) {
			return cancelled(err)
		}
		return fmt.Errorf("merge %s: %w", folder, err)
	}
	return nil
}

// ResolveSDKs runs the resolution pass without merging anything.
// It is a no-op when no inherited SDK edges remain.
func (s *WorkspaceService) ResolveSDKs(ctx context.Context) error {
	return s.store.Update(ctx, s.resolveInheritedSDKs)
}

// resolveInheritedSDKs rewrites every inherited SDK edge in the workspace
// to the default SDK, creating the default on first need.
func (s *WorkspaceService) resolveInheritedSDKs(ws *domain.Workspace) error {
	resolved := 0
	for _, m := range ws.Modules() {
		for i, d := range m.Dependencies {
			if d.Kind != domain.DependencyInheritedSDK {
				continue
			}
			sdk, err := s.defaultSDK(ws)
			if errors.Is(err, domain.ErrNotFound) {
				logger.Warn("no SDK installed, inherited SDK edges left unresolved")
				return nil
			}
			if err != nil {
				return fmt.Errorf("default sdk: %w", err)
			}
			m.Dependencies[i] = domain.SDKDependency(sdk.Name)
			resolved++
		}
	}
	if resolved > 0 {
		logger.Debug("resolved %d inherited SDK edges", resolved)
	}
	return nil
}

// defaultSDK returns the store's default SDK, populating the cell once.
// It runs under the store's writer lock, so the check and the creation
// cannot race.
func (s *WorkspaceService) defaultSDK(ws *domain.Workspace) (*domain.SDK, error) {
	if ws.DefaultSDK != nil {
		return ws.DefaultSDK, nil
	}
	if s.sdks == nil {
		return nil, domain.ErrNotFound
	}
	sdk, err := s.sdks.Default()
	if err != nil {
		return nil, err
	}
	logger.Info("default SDK: %s (%s)", sdk.Name, sdk.HomePath)
	ws.DefaultSDK = sdk
	return sdk, nil
}

// Remove drops a folder's contribution.
func (s *WorkspaceService) Remove(ctx context.Context, folder string) error {
	return s.store.Update(ctx, func(ws *domain.Workspace) error {
		if !ws.Remove(folder) {
			return fmt.Errorf("folder %s: %w", folder, domain.ErrNotFound)
		}
		return nil
	})
}

// Graph returns a copy of the folder's contribution.
func (s *WorkspaceService) Graph(ctx context.Context, folder string) (*domain.Graph, error) {
	var out *domain.Graph
	err := s.store.View(ctx, func(ws *domain.Workspace) error {
		g, ok := ws.Contributions[folder]
		if !ok {
			return fmt.Errorf("folder %s: %w", folder, domain.ErrNotFound)
		}
		out = g.Clone()
		return nil
	})
	return out, err
}

// Folders lists the contributing folders.
func (s *WorkspaceService) Folders(ctx context.Context) ([]string, error) {
	var folders []string
	err := s.store.View(ctx, func(ws *domain.Workspace) error {
		folders = ws.Folders()
		return nil
	})
	return folders, err
}

// DefaultSDK returns the store's default SDK.
// Returns domain.ErrNotFound if none has been created yet.
func (s *WorkspaceService) DefaultSDK(ctx context.Context) (*domain.SDK, error) {
	var sdk *domain.SDK
	err := s.store.View(ctx, func(ws *domain.Workspace) error {
		if ws.DefaultSDK == nil {
			return domain.ErrNotFound
		}
		c := *ws.DefaultSDK
		sdk = &c
		return nil
	})
	return sdk, err
}
