package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wsimport/internal/core/domain"
)

const repo = "/repo"

func barJar() string { return repo + "/com/foo/bar/1.0/bar-1.0.jar" }

func coreDescriptor() domain.ModuleDescriptor {
	return domain.ModuleDescriptor{
		Dir:        "/ws/core",
		Coordinate: domain.Coordinate{GroupID: "com.example", ArtifactID: "core", Version: "1.0"},
		Packaging:  "jar",
		Dependencies: []domain.DependencyDescriptor{
			{
				Coordinate: domain.Coordinate{GroupID: "com.foo", ArtifactID: "bar", Version: "1.0"},
				File:       barJar(),
			},
		},
		SourceDirs:              []string{"/ws/core/src/main/java", "/ws/core/src/main/kotlin"},
		ResourceDirs:            []string{"/ws/core/src/main/resources"},
		TestSourceDirs:          []string{"/ws/core/src/test/java"},
		TestResourceDirs:        []string{"/ws/core/src/test/resources"},
		GeneratedSourceDirs:     []string{"/ws/core/target/generated-sources/annotations"},
		GeneratedTestSourceDirs: []string{"/ws/core/target/generated-test-sources/test-annotations"},
		OutputDir:               "/ws/core/target",
		SplitTests:              true,
	}
}

func newBuilder(files *mockFiles, sdks *mockSDKs, sink func(string)) *GraphBuilder {
	opts := BuilderOptions{
		LibraryPrefix: "Maven",
		Compiler:      domain.DefaultSettings().Compiler,
	}
	if sdks == nil {
		return NewGraphBuilder(files, nil, plainURLs, sink, opts)
	}
	return NewGraphBuilder(files, sdks, plainURLs, sink, opts)
}

func TestGraphBuilder_CoreScenario(t *testing.T) {
	files := newMockFiles().
		addFile(barJar(), repo+"/com/foo/bar/1.0/bar-1.0-sources.jar").
		addDir("/ws/core", "/ws/core/src/main/java", "/ws/core/src/test/java", "/ws/core/target")

	g, err := newBuilder(files, nil, nil).Build([]domain.ModuleDescriptor{coreDescriptor()}, NewDedupContext())
	require.NoError(t, err)

	require.Len(t, g.Modules, 2)
	main, ok := g.Module("core.main")
	require.True(t, ok)
	test, ok := g.Module("core.test")
	require.True(t, ok)
	assert.Equal(t, domain.ModuleKindMain, main.Kind)
	assert.Equal(t, domain.ModuleKindTest, test.Kind)

	t.Run("shared library", func(t *testing.T) {
		require.Len(t, g.Libraries, 1)
		lib := g.Libraries[0]
		assert.Equal(t, "Maven: com.foo:bar:1.0", lib.Name)
		assert.Len(t, lib.RootsOf(domain.RootCompiled), 1)
		assert.Len(t, lib.RootsOf(domain.RootSources), 1)
		assert.Equal(t, "file://"+repo+"/com/foo/bar/1.0/bar-1.0-sources.jar", lib.RootsOf(domain.RootSources)[0].URL)
		assert.Equal(t, &domain.LibraryProperties{GroupID: "com.foo", ArtifactID: "bar", Version: "1.0"}, lib.Properties)

		mainLibs := main.DependenciesOf(domain.DependencyLibrary)
		require.Len(t, mainLibs, 1)
		assert.Same(t, lib, mainLibs[0].Library)
		assert.Equal(t, domain.ScopeCompile, mainLibs[0].Scope)
	})

	t.Run("dependency order", func(t *testing.T) {
		kinds := func(m *domain.Module) []domain.DependencyKind {
			var out []domain.DependencyKind
			for _, d := range m.Dependencies {
				out = append(out, d.Kind)
			}
			return out
		}
		assert.Equal(t, []domain.DependencyKind{
			domain.DependencyLibrary, domain.DependencyModuleSource, domain.DependencyInheritedSDK,
		}, kinds(main))
		assert.Equal(t, []domain.DependencyKind{
			domain.DependencyLibrary, domain.DependencyModuleSource, domain.DependencyInheritedSDK, domain.DependencyModule,
		}, kinds(test))
	})

	t.Run("test links to main", func(t *testing.T) {
		edges := test.DependenciesOf(domain.DependencyModule)
		require.Len(t, edges, 1)
		assert.Equal(t, domain.ModuleDependency("core.main", domain.ScopeCompile, false), edges[0])
		assert.Empty(t, main.DependenciesOf(domain.DependencyModule))
	})

	t.Run("content roots", func(t *testing.T) {
		assert.Equal(t, "file:///ws/core", main.ContentRoot.URL)
		assert.Equal(t, []domain.SourceRoot{
			{URL: "file:///ws/core/src/main/java", Role: domain.RoleSource},
		}, main.ContentRoot.SourceRoots)
		assert.Equal(t, []string{"file:///ws/core/target"}, main.ContentRoot.ExcludedURLs)

		assert.Equal(t, []domain.SourceRoot{
			{URL: "file:///ws/core/src/test/java", Role: domain.RoleTestSource},
		}, test.ContentRoot.SourceRoots)
		assert.Empty(t, test.ContentRoot.ExcludedURLs)
	})

	t.Run("no facet without compiler plugin", func(t *testing.T) {
		assert.Nil(t, main.Facet)
	})
}

func TestGraphBuilder_Dedup(t *testing.T) {
	files := newMockFiles().addFile(barJar())

	a := coreDescriptor()
	a.Coordinate.ArtifactID = "a"
	b := coreDescriptor()
	b.Coordinate.ArtifactID = "b"

	g, err := newBuilder(files, nil, nil).Build([]domain.ModuleDescriptor{a, b}, NewDedupContext())
	require.NoError(t, err)

	require.Len(t, g.Libraries, 1)
	lib := g.Libraries[0]
	for _, m := range g.Modules {
		edges := m.DependenciesOf(domain.DependencyLibrary)
		require.Len(t, edges, 1, m.Name)
		assert.Same(t, lib, edges[0].Library, m.Name)
	}

	// Sources are probed once, on materialisation.
	assert.Equal(t, 1, files.probes[repo+"/com/foo/bar/1.0/bar-1.0-sources.jar"])
}

func TestGraphBuilder_MissingArtifact(t *testing.T) {
	t.Run("file absent", func(t *testing.T) {
		var calls []string
		g, err := newBuilder(newMockFiles(), nil, func(c string) { calls = append(calls, c) }).
			Build([]domain.ModuleDescriptor{coreDescriptor()}, NewDedupContext())
		require.NoError(t, err)

		assert.Equal(t, []string{"com.foo:bar:1.0"}, calls)
		assert.Empty(t, g.Libraries)
		for _, m := range g.Modules {
			assert.Empty(t, m.DependenciesOf(domain.DependencyLibrary), m.Name)
		}
	})

	t.Run("no file path", func(t *testing.T) {
		d := coreDescriptor()
		d.Dependencies[0].File = ""

		var calls []string
		_, err := newBuilder(newMockFiles(), nil, func(c string) { calls = append(calls, c) }).
			Build([]domain.ModuleDescriptor{d}, NewDedupContext())
		require.NoError(t, err)
		assert.Equal(t, []string{"com.foo:bar:1.0"}, calls)
	})
}

func TestGraphBuilder_TestScope(t *testing.T) {
	junit := repo + "/junit/junit/4.13/junit-4.13.jar"
	d := coreDescriptor()
	d.Dependencies = append(d.Dependencies, domain.DependencyDescriptor{
		Coordinate: domain.Coordinate{GroupID: "junit", ArtifactID: "junit", Version: "4.13"},
		Scope:      "test",
		File:       junit,
	})
	files := newMockFiles().addFile(barJar(), junit)

	g, err := newBuilder(files, nil, nil).Build([]domain.ModuleDescriptor{d}, NewDedupContext())
	require.NoError(t, err)

	main, _ := g.Module("core.main")
	test, _ := g.Module("core.test")
	assert.Len(t, main.DependenciesOf(domain.DependencyLibrary), 1)

	testLibs := test.DependenciesOf(domain.DependencyLibrary)
	require.Len(t, testLibs, 2)
	assert.Equal(t, domain.ScopeTest, testLibs[1].Scope)
}

func TestGraphBuilder_NoSplit(t *testing.T) {
	d := coreDescriptor()
	d.SplitTests = false
	files := newMockFiles().
		addFile(barJar()).
		addDir("/ws/core", "/ws/core/src/main/java", "/ws/core/src/test/java")

	g, err := newBuilder(files, nil, nil).Build([]domain.ModuleDescriptor{d}, NewDedupContext())
	require.NoError(t, err)

	require.Len(t, g.Modules, 1)
	m := g.Modules[0]
	assert.Equal(t, "core", m.Name)
	assert.Equal(t, domain.ModuleKindMain, m.Kind)
	assert.Empty(t, m.DependenciesOf(domain.DependencyModule))
	assert.Len(t, m.ContentRoot.SourceRoots, 2)
}

func TestGraphBuilder_ContentRootMissingDir(t *testing.T) {
	g, err := newBuilder(newMockFiles(), nil, nil).Build([]domain.ModuleDescriptor{coreDescriptor()}, NewDedupContext())
	require.NoError(t, err)

	for _, m := range g.Modules {
		assert.Equal(t, domain.ContentRoot{}, m.ContentRoot, m.Name)
	}
}

func TestGraphBuilder_NameCollision(t *testing.T) {
	a := coreDescriptor()
	b := coreDescriptor()
	b.Dir = "/ws/other"
	b.Coordinate.GroupID = "org.other"
	c := coreDescriptor()
	c.Dir = "/ws/third"
	c.Coordinate.GroupID = "org.other"

	g, err := newBuilder(newMockFiles(), nil, nil).Build([]domain.ModuleDescriptor{a, b, c}, NewDedupContext())
	require.NoError(t, err)

	var names []string
	for _, m := range g.Modules {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"core.main", "core.test", "org.other.core.main", "org.other.core.test"}, names)
}

func TestGraphBuilder_SourcesPatterns(t *testing.T) {
	dir := repo + "/com/foo/bar/1.0/"

	tests := []struct {
		name    string
		present []string
		want    string
	}{
		{"sources suffix", []string{dir + "bar-1.0-sources.jar", dir + "bar-1.0-src.jar"}, dir + "bar-1.0-sources.jar"},
		{"src suffix", []string{dir + "bar-1.0-src.jar"}, dir + "bar-1.0-src.jar"},
		{"none", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := newMockFiles().addFile(barJar()).addFile(tt.present...)
			g, err := newBuilder(files, nil, nil).Build([]domain.ModuleDescriptor{coreDescriptor()}, NewDedupContext())
			require.NoError(t, err)

			sources := g.Libraries[0].RootsOf(domain.RootSources)
			if tt.want == "" {
				assert.Empty(t, sources)
				return
			}
			require.Len(t, sources, 1)
			assert.Equal(t, "file://"+tt.want, sources[0].URL)
		})
	}

	t.Run("classified artifact falls back to plain sources", func(t *testing.T) {
		d := coreDescriptor()
		d.Dependencies[0].File = dir + "bar-1.0-jdk8.jar"
		files := newMockFiles().addFile(dir+"bar-1.0-jdk8.jar", dir+"bar-1.0-sources.jar")

		g, err := newBuilder(files, nil, nil).Build([]domain.ModuleDescriptor{d}, NewDedupContext())
		require.NoError(t, err)
		sources := g.Libraries[0].RootsOf(domain.RootSources)
		require.Len(t, sources, 1)
		assert.Equal(t, "file://"+dir+"bar-1.0-sources.jar", sources[0].URL)
	})
}

func TestGraphBuilder_SDKEdge(t *testing.T) {
	sdks := &mockSDKs{installed: []domain.SDK{{Name: "17", Version: "17.0.2"}, {Name: "11", Version: "11.0.20"}}}

	tests := []struct {
		name  string
		props map[string]string
		want  domain.Dependency
	}{
		{"release wins", map[string]string{"maven.compiler.release": "11", "maven.compiler.target": "17"}, domain.SDKDependency("11")},
		{"target", map[string]string{"maven.compiler.target": "17"}, domain.SDKDependency("17")},
		{"legacy source", map[string]string{"maven.compiler.source": "1.8", "java.version": "17"}, domain.InheritedSDKDependency()},
		{"java version", map[string]string{"java.version": "17"}, domain.SDKDependency("17")},
		{"kotlin target", map[string]string{"kotlin.compiler.jvmTarget": "11"}, domain.SDKDependency("11")},
		{"not installed", map[string]string{"maven.compiler.release": "21"}, domain.InheritedSDKDependency()},
		{"no hint", nil, domain.InheritedSDKDependency()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := coreDescriptor()
			d.Properties = tt.props

			g, err := newBuilder(newMockFiles(), sdks, nil).Build([]domain.ModuleDescriptor{d}, NewDedupContext())
			require.NoError(t, err)

			main, _ := g.Module("core.main")
			assert.Equal(t, tt.want, main.Dependencies[len(main.Dependencies)-1])
		})
	}
}
