package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wsimport/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wsimport/internal/core/domain"
	"github.com/custodia-labs/wsimport/internal/core/services"
)

// mockImportService implements driving.ImportService for testing.
type mockImportService struct {
	folders []string
	err     error
}

func (m *mockImportService) ImportFolder(_ context.Context, folder string) (*domain.FolderReport, error) {
	reports, err := m.ImportFolders(context.Background(), []string{folder})
	if err != nil {
		return nil, err
	}
	return &reports[0], nil
}

func (m *mockImportService) ImportFolders(_ context.Context, folders []string) ([]domain.FolderReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	reports := make([]domain.FolderReport, 0, len(folders))
	for _, f := range folders {
		m.folders = append(m.folders, f)
		abs, _ := filepath.Abs(f)
		reports = append(reports, domain.FolderReport{
			Folder:     abs,
			Strategy:   domain.ImporterMaven,
			Modules:    2,
			Libraries:  1,
			Warnings:   []string{"Cannot import submodule broken"},
			Unresolved: []string{"org.acme:gone:1.0"},
		})
	}
	return reports, nil
}

// mockWatcher implements driving.FolderWatcher for testing.
type mockWatcher struct {
	folders []string
}

func (m *mockWatcher) Watch(_ context.Context, folders []string) error {
	m.folders = folders
	return nil
}

// mockOrchestrator implements driving.ImportOrchestrator for testing.
type mockOrchestrator struct{}

func (m *mockOrchestrator) Import(context.Context, string, func(string)) (*domain.ImportResult, error) {
	return &domain.ImportResult{}, nil
}

func (m *mockOrchestrator) Strategies() []string {
	return []string{domain.ImporterWorkspaceJSON, domain.ImporterMaven}
}

// testServices holds the services installed by setupTestServices.
type testServices struct {
	imports   *mockImportService
	watcher   *mockWatcher
	workspace *services.WorkspaceService
	settings  *services.SettingsService
}

// setupTestServices installs services backed by memory stores and resets
// command state when the test ends.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	ts := &testServices{
		imports:   &mockImportService{},
		watcher:   &mockWatcher{},
		workspace: services.NewWorkspaceService(memory.NewWorkspaceStore(), nil),
		settings:  services.NewSettingsService(memory.NewConfigStore()),
	}
	SetBootstrap(nil)
	SetServices(&Services{
		Import:       ts.imports,
		Workspace:    ts.workspace,
		Settings:     ts.settings,
		Orchestrator: &mockOrchestrator{},
		Watcher:      ts.watcher,
	})

	t.Cleanup(func() {
		SetServices(nil)
		importWatch = false
		exportCrop = false
		exportOutput = ""
	})
	return ts
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// mergeGraph stores graph as the contribution of folder.
func mergeGraph(t *testing.T, ts *testServices, folder string, g *domain.Graph) {
	t.Helper()
	require.NoError(t, ts.workspace.Merge(context.Background(), folder, g))
}

func coreGraph(root string) *domain.Graph {
	lib := &domain.Library{
		Name:       "Maven: com.acme:util:1.0",
		Coordinate: domain.Coordinate{GroupID: "com.acme", ArtifactID: "util", Version: "1.0"},
		Roots:      []domain.LibraryRoot{{URL: "file://" + root + "/repo/util-1.0.jar", Kind: domain.RootCompiled}},
		Properties: &domain.LibraryProperties{GroupID: "com.acme", ArtifactID: "util", Version: "1.0"},
	}
	return &domain.Graph{
		Modules: []*domain.Module{{
			Name: "core.main",
			Kind: domain.ModuleKindMain,
			Dependencies: []domain.Dependency{
				domain.LibraryDependency(lib, domain.ScopeCompile, false),
				domain.ModuleSourceDependency(),
				domain.SDKDependency("17"),
			},
			ContentRoot: domain.ContentRoot{
				URL:         "file://" + root + "/core",
				SourceRoots: []domain.SourceRoot{{URL: "file://" + root + "/core/src/main/java", Role: domain.RoleSource}},
			},
		}},
		Libraries: []*domain.Library{lib},
	}
}
