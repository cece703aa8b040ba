package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/wsimport/internal/core/domain"
	"github.com/custodia-labs/wsimport/internal/core/ports/driven"
)

// Ensure WorkspaceStore implements the interface.
var _ driven.WorkspaceStore = (*WorkspaceStore)(nil)

// WorkspaceStore is an in-memory implementation of driven.WorkspaceStore.
// Its content lives for the process lifetime.
type WorkspaceStore struct {
	mu sync.RWMutex
	ws *domain.Workspace
}

// NewWorkspaceStore creates an empty in-memory workspace store.
func NewWorkspaceStore() *WorkspaceStore {
	return &WorkspaceStore{
		ws: domain.NewWorkspace(),
	}
}

// Update runs fn on a copy of the workspace under the writer lock and
// swaps the copy in when fn succeeds.
func (s *WorkspaceStore) Update(ctx context.Context, fn func(ws *domain.Workspace) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	draft := s.ws.Clone()
	if err := fn(draft); err != nil {
		return err
	}
	s.ws = draft
	return nil
}

// View runs fn under the reader lock.
func (s *WorkspaceStore) View(ctx context.Context, fn func(ws *domain.Workspace) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(s.ws)
}

// Close is a no-op for the memory store.
func (s *WorkspaceStore) Close() error {
	return nil
}
