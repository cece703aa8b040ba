package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/wsimport/internal/core/domain"
	"github.com/custodia-labs/wsimport/internal/core/ports/driven"
)

// mockFiles is a FileProber over a fixed set of paths.
type mockFiles struct {
	files  map[string]bool
	dirs   map[string]bool
	probes map[string]int
}

func newMockFiles() *mockFiles {
	return &mockFiles{
		files:  make(map[string]bool),
		dirs:   make(map[string]bool),
		probes: make(map[string]int),
	}
}

func (m *mockFiles) addFile(paths ...string) *mockFiles {
	for _, p := range paths {
		m.files[p] = true
	}
	return m
}

func (m *mockFiles) addDir(paths ...string) *mockFiles {
	for _, p := range paths {
		m.dirs[p] = true
	}
	return m
}

func (m *mockFiles) Exists(path string) bool {
	m.probes[path]++
	return m.files[path] || m.dirs[path]
}

func (m *mockFiles) IsDir(path string) bool {
	return m.dirs[path]
}

// mockSDKs is an SDKLocator over a fixed SDK list.
type mockSDKs struct {
	mu           sync.Mutex
	installed    []domain.SDK
	defaultCalls int
}

func (m *mockSDKs) Find(version string) (*domain.SDK, bool) {
	want := domain.MajorVersion(version)
	for _, sdk := range m.installed {
		if sdk.Name == want {
			s := sdk
			return &s, true
		}
	}
	return nil, false
}

func (m *mockSDKs) Default() (*domain.SDK, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultCalls++
	if len(m.installed) == 0 {
		return nil, domain.ErrNotFound
	}
	s := m.installed[0]
	return &s, nil
}

func (m *mockSDKs) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.defaultCalls
}

// mockImporter is a scripted import strategy.
type mockImporter struct {
	name       string
	applicable bool
	graph      *domain.Graph
	err        error
	panicWith  any
	unresolved []string
	warnings   []string
	imports    int
	onImport   func(ctx context.Context)
}

func (m *mockImporter) Name() string { return m.name }

func (m *mockImporter) IsApplicable(string) bool { return m.applicable }

func (m *mockImporter) Import(
	ctx context.Context,
	_ string,
	_ domain.URLResolver,
	onUnresolved driven.UnresolvedFunc,
	onWarning driven.WarningFunc,
) (*domain.Graph, error) {
	m.imports++
	if m.onImport != nil {
		m.onImport(ctx)
	}
	for _, c := range m.unresolved {
		onUnresolved(c)
	}
	for _, w := range m.warnings {
		onWarning(w)
	}
	if m.panicWith != nil {
		panic(m.panicWith)
	}
	return m.graph, m.err
}

// mockReader is a scripted DescriptorReader.
type mockReader struct {
	result *domain.ReadResult
	err    error
}

func (m *mockReader) Name() string { return "mock" }

func (m *mockReader) IsApplicable(string) bool { return true }

func (m *mockReader) ReadModules(context.Context, string) (*domain.ReadResult, error) {
	return m.result, m.err
}

// plainURLs maps paths to file URLs unchanged.
var plainURLs = domain.PathAbsolute.Resolver("/")

func singleModuleGraph(name string) *domain.Graph {
	return &domain.Graph{
		Modules: []*domain.Module{{
			Name:         name,
			Kind:         domain.ModuleKindMain,
			Dependencies: []domain.Dependency{domain.ModuleSourceDependency(), domain.InheritedSDKDependency()},
		}},
	}
}
