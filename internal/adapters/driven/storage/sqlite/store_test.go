package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wsimport/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/wsimport/internal/core/domain"
)

// setupTestStore opens a store in a temporary directory.
func setupTestStore(t *testing.T) (*WorkspaceStore, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := NewWorkspaceStore(dir)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store, dir
}

func testGraph(name string) *domain.Graph {
	junit := &domain.Library{
		Name:       "Maven: junit:junit:4.13",
		Coordinate: domain.Coordinate{GroupID: "junit", ArtifactID: "junit", Version: "4.13"},
		Roots:      []domain.LibraryRoot{{URL: "file:///repo/junit-4.13.jar", Kind: domain.RootCompiled}},
		Properties: &domain.LibraryProperties{GroupID: "junit", ArtifactID: "junit", Version: "4.13"},
	}
	return &domain.Graph{
		Modules: []*domain.Module{{
			Name: name,
			Kind: domain.ModuleKindTest,
			Dependencies: []domain.Dependency{
				domain.LibraryDependency(junit, domain.ScopeTest, false),
				domain.ModuleSourceDependency(),
				domain.SDKDependency("17"),
			},
			ContentRoot: domain.ContentRoot{
				URL:          "file:///ws/" + name,
				SourceRoots:  []domain.SourceRoot{{URL: "file:///ws/" + name + "/src/test/java", Role: domain.RoleTestSource}},
				ExcludedURLs: []string{"file:///ws/" + name + "/target"},
			},
		}},
		Libraries: []*domain.Library{junit},
	}
}

func TestNewWorkspaceStore(t *testing.T) {
	store, dir := setupTestStore(t)

	assert.Equal(t, filepath.Join(dir, DatabaseFileName), store.Path())

	err := store.View(context.Background(), func(ws *domain.Workspace) error {
		assert.Empty(t, ws.Contributions)
		assert.Nil(t, ws.DefaultSDK)
		return nil
	})
	require.NoError(t, err)
}

func TestWorkspaceStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	store, dir := setupTestStore(t)

	sdk := &domain.SDK{Name: "17", Version: "17.0.2", HomePath: "/jdk17"}
	err := store.Update(ctx, func(ws *domain.Workspace) error {
		ws.Replace("/ws/a", testGraph("a.test"))
		ws.Replace("/ws/b", testGraph("b.test"))
		ws.DefaultSDK = sdk
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewWorkspaceStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	err = reopened.View(ctx, func(ws *domain.Workspace) error {
		assert.Equal(t, []string{"/ws/a", "/ws/b"}, ws.Folders())
		assert.Equal(t, testGraph("a.test"), ws.Contributions["/ws/a"])
		assert.Equal(t, sdk, ws.DefaultSDK)
		return nil
	})
	require.NoError(t, err)
}

func TestWorkspaceStore_RemoveAndReplace(t *testing.T) {
	ctx := context.Background()
	store, dir := setupTestStore(t)

	require.NoError(t, store.Update(ctx, func(ws *domain.Workspace) error {
		ws.Replace("/ws/a", testGraph("a.test"))
		ws.Replace("/ws/b", testGraph("b.test"))
		return nil
	}))
	require.NoError(t, store.Update(ctx, func(ws *domain.Workspace) error {
		ws.Remove("/ws/a")
		ws.Replace("/ws/b", testGraph("b2.test"))
		return nil
	}))
	require.NoError(t, store.Close())

	reopened, err := NewWorkspaceStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	err = reopened.View(ctx, func(ws *domain.Workspace) error {
		assert.Equal(t, []string{"/ws/b"}, ws.Folders())
		_, ok := ws.Contributions["/ws/b"].Module("b2.test")
		assert.True(t, ok)
		return nil
	})
	require.NoError(t, err)
}

func TestWorkspaceStore_UnchangedContributionKeepsRun(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)

	require.NoError(t, store.Update(ctx, func(ws *domain.Workspace) error {
		ws.Replace("/ws/a", testGraph("a.test"))
		return nil
	}))
	before, err := store.Contributions(ctx)
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.NotEmpty(t, before[0].RunID)
	assert.False(t, before[0].ImportedAt.IsZero())

	require.NoError(t, store.Update(ctx, func(ws *domain.Workspace) error {
		ws.Replace("/ws/a", testGraph("a.test"))
		ws.Replace("/ws/b", testGraph("b.test"))
		return nil
	}))
	after, err := store.Contributions(ctx)
	require.NoError(t, err)
	require.Len(t, after, 2)
	assert.Equal(t, before[0].RunID, after[0].RunID)
	assert.NotEqual(t, after[0].RunID, after[1].RunID)
}

func TestWorkspaceStore_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	store, dir := setupTestStore(t)
	failure := errors.New("boom")

	err := store.Update(ctx, func(ws *domain.Workspace) error {
		ws.Replace("/ws/a", testGraph("a.test"))
		return failure
	})
	assert.ErrorIs(t, err, failure)

	rows, err := store.Contributions(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
	require.NoError(t, store.Close())

	reopened, err := NewWorkspaceStore(dir)
	require.NoError(t, err)
	defer reopened.Close()
	err = reopened.View(ctx, func(ws *domain.Workspace) error {
		assert.Empty(t, ws.Contributions)
		return nil
	})
	require.NoError(t, err)
}

func TestWorkspaceStore_CancelledContext(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := store.Update(ctx, func(*domain.Workspace) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)

	err = store.View(ctx, func(*domain.Workspace) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWorkspaceStore_ConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)

	var wg sync.WaitGroup
	for _, name := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Update(ctx, func(ws *domain.Workspace) error {
				ws.Replace("/ws/"+name, testGraph(name+".test"))
				return nil
			}))
		}()
	}
	wg.Wait()

	rows, err := store.Contributions(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestWorkspaceStore_Migrate_Idempotent(t *testing.T) {
	store, _ := setupTestStore(t)

	require.NoError(t, store.migrate(migrations.FS))

	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestWorkspaceStore_Migrate_AppliesNewVersions(t *testing.T) {
	store, _ := setupTestStore(t)

	fsys := fstest.MapFS{
		"002_notes.up.sql":   {Data: []byte("CREATE TABLE notes (id INTEGER PRIMARY KEY);")},
		"002_notes.down.sql": {Data: []byte("DROP TABLE notes;")},
	}
	require.NoError(t, store.migrate(fsys))
	require.NoError(t, store.migrate(fsys))

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 2, version)

	_, err := store.db.Exec("INSERT INTO notes (id) VALUES (1)")
	assert.NoError(t, err)
}

func TestWorkspaceStore_Migrate_FailureRollsBack(t *testing.T) {
	store, _ := setupTestStore(t)

	fsys := fstest.MapFS{
		"003_broken.up.sql": {Data: []byte("CREATE TABLE partial (id INTEGER); NOT SQL;")},
	}
	require.Error(t, store.migrate(fsys))

	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}
