package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/wsimport/internal/core/domain"
	"github.com/custodia-labs/wsimport/internal/core/ports/driven"
	"github.com/custodia-labs/wsimport/internal/logger"
)

// sdkVersionKeys are the build properties hinting at the required SDK,
// highest priority first.
var sdkVersionKeys = []string{
	"maven.compiler.release",
	"maven.compiler.target",
	"maven.compiler.source",
	"java.version",
	"kotlin.compiler.jvmTarget",
}

// sourcesPatterns derive candidate sources-artifact paths from a compiled
// artifact, in probing order.
var sourcesPatterns = []func(file string, c domain.Coordinate) string{
	func(file string, _ domain.Coordinate) string {
		return strings.TrimSuffix(file, filepath.Ext(file)) + "-sources.jar"
	},
	func(file string, _ domain.Coordinate) string {
		return strings.TrimSuffix(file, filepath.Ext(file)) + "-src.jar"
	},
	func(file string, c domain.Coordinate) string {
		return filepath.Join(filepath.Dir(file), c.ArtifactID+"-"+c.Version+"-sources.jar")
	},
}

// BuilderOptions configures a GraphBuilder.
type BuilderOptions struct {
	// LibraryPrefix is prepended to library names, e.g. "Maven".
	LibraryPrefix string

	// Compiler holds the facet baselines.
	Compiler domain.CompilerDefaults
}

// GraphBuilder turns module descriptors into an entity graph.
// Data-quality problems never fail a build: missing artifacts are
// reported through the unresolved callback and their edges omitted.
type GraphBuilder struct {
	files        driven.FileProber
	sdks         driven.SDKLocator
	urls         domain.URLResolver
	onUnresolved driven.UnresolvedFunc
	opts         BuilderOptions
}

// NewGraphBuilder creates a builder for one import call.
// sdks and onUnresolved may be nil.
func NewGraphBuilder(
	files driven.FileProber,
	sdks driven.SDKLocator,
	urls domain.URLResolver,
	onUnresolved driven.UnresolvedFunc,
	opts BuilderOptions,
) *GraphBuilder {
	if onUnresolved == nil {
		onUnresolved = func(string) {}
	}
	return &GraphBuilder{
		files:        files,
		sdks:         sdks,
		urls:         urls,
		onUnresolved: onUnresolved,
		opts:         opts,
	}
}

// Build synthesises the modules of every descriptor and the libraries
// they share. The dedup context must be fresh for the import call.
func (b *GraphBuilder) Build(descriptors []domain.ModuleDescriptor, dedup *DedupContext) (*domain.Graph, error) {
	graph := domain.NewGraph()
	taken := make(map[string]bool)

	for i := range descriptors {
		d := &descriptors[i]

		base, ok := b.moduleBaseName(d, taken)
		if !ok {
			logger.Warn("skipping module %s: name %q already used", d.Dir, d.Coordinate.ArtifactID)
			continue
		}

		if !d.SplitTests {
			graph.Modules = append(graph.Modules, b.buildModule(d, base, domain.ModuleKindMain, "", dedup))
			taken[base] = true
			continue
		}

		mainName := base + ".main"
		testName := base + ".test"
		graph.Modules = append(graph.Modules,
			b.buildModule(d, mainName, domain.ModuleKindMain, "", dedup),
			b.buildModule(d, testName, domain.ModuleKindTest, mainName, dedup),
		)
		taken[base] = true
	}

	graph.Libraries = dedup.Libraries()

	if err := graph.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvariantViolation, err)
	}
	return graph, nil
}

// moduleBaseName picks the artifact id, falling back to group.artifact
// when two descriptors share an artifact id.
func (b *GraphBuilder) moduleBaseName(d *domain.ModuleDescriptor, taken map[string]bool) (string, bool) {
	base := d.Coordinate.ArtifactID
	if base == "" {
		base = filepath.Base(d.Dir)
	}
	if !taken[base] {
		return base, true
	}
	if d.Coordinate.GroupID != "" {
		qualified := d.Coordinate.GroupID + "." + base
		if !taken[qualified] {
			return qualified, true
		}
	}
	return "", false
}

func (b *GraphBuilder) buildModule(
	d *domain.ModuleDescriptor,
	name string,
	kind domain.ModuleKind,
	mainName string,
	dedup *DedupContext,
) *domain.Module {
	m := &domain.Module{
		Name:        name,
		Kind:        kind,
		ContentRoot: b.contentRoot(d, kind),
		Facet:       b.facet(d),
	}

	// 1-2. Declared library dependencies
	for _, dep := range d.Dependencies {
		scope := domain.ParseScope(dep.Scope)
		if d.SplitTests && kind == domain.ModuleKindMain && scope == domain.ScopeTest {
			continue
		}
		lib, ok := b.library(dep, dedup)
		if !ok {
			continue
		}
		m.Dependencies = append(m.Dependencies, domain.LibraryDependency(lib, scope, false))
	}

	// 3. Module source marker
	m.Dependencies = append(m.Dependencies, domain.ModuleSourceDependency())

	// 4. SDK requirement
	m.Dependencies = append(m.Dependencies, b.sdkDependency(d))

	// 5. Test modules see their main module
	if kind == domain.ModuleKindTest {
		m.Dependencies = append(m.Dependencies, domain.ModuleDependency(mainName, domain.ScopeCompile, false))
	}

	return m
}

// library returns the shared library for a dependency, materialising it
// on first use. Returns false when the artifact file is missing.
func (b *GraphBuilder) library(dep domain.DependencyDescriptor, dedup *DedupContext) (*domain.Library, bool) {
	key := dep.Coordinate.String()
	if lib, ok := dedup.Lookup(key); ok {
		return lib, true
	}
	if dedup.isMissing(key) {
		return nil, false
	}

	if dep.File == "" || !b.files.Exists(dep.File) {
		if dedup.markMissing(key) {
			logger.Debug("unresolved dependency %s (file %q)", key, dep.File)
			b.onUnresolved(key)
		}
		return nil, false
	}

	lib := &domain.Library{
		Name:       b.libraryName(dep.Coordinate),
		Coordinate: dep.Coordinate,
		Roots: []domain.LibraryRoot{
			{URL: b.urls.URL(dep.File), Kind: domain.RootCompiled},
		},
		Properties: &domain.LibraryProperties{
			GroupID:    dep.Coordinate.GroupID,
			ArtifactID: dep.Coordinate.ArtifactID,
			Version:    dep.Coordinate.Version,
		},
	}
	if sources, ok := b.findSources(dep); ok {
		lib.Roots = append(lib.Roots, domain.LibraryRoot{URL: b.urls.URL(sources), Kind: domain.RootSources})
	}

	dedup.Register(lib)
	return lib, true
}

func (b *GraphBuilder) libraryName(c domain.Coordinate) string {
	if b.opts.LibraryPrefix == "" {
		return c.String()
	}
	return b.opts.LibraryPrefix + ": " + c.String()
}

func (b *GraphBuilder) findSources(dep domain.DependencyDescriptor) (string, bool) {
	tried := map[string]bool{dep.File: true}
	for _, pattern := range sourcesPatterns {
		candidate := pattern(dep.File, dep.Coordinate)
		if tried[candidate] {
			continue
		}
		tried[candidate] = true
		if b.files.Exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// sdkDependency emits an explicit SDK edge when the descriptor names a
// version that is installed, and the inherited placeholder otherwise.
func (b *GraphBuilder) sdkDependency(d *domain.ModuleDescriptor) domain.Dependency {
	lookups := make([]Lookup, 0, len(sdkVersionKeys))
	for _, key := range sdkVersionKeys {
		lookups = append(lookups, MapLookup(d.Properties, key))
	}

	version, ok := ResolveChain(lookups...)
	if !ok || b.sdks == nil {
		return domain.InheritedSDKDependency()
	}
	sdk, found := b.sdks.Find(version)
	if !found {
		logger.Debug("no installed SDK for version %s, using inherited SDK", version)
		return domain.InheritedSDKDependency()
	}
	return domain.SDKDependency(sdk.Name)
}

func (b *GraphBuilder) contentRoot(d *domain.ModuleDescriptor, kind domain.ModuleKind) domain.ContentRoot {
	if !b.files.IsDir(d.Dir) {
		return domain.ContentRoot{}
	}

	root := domain.ContentRoot{URL: b.urls.URL(d.Dir)}
	add := func(dirs []string, role domain.SourceRole) {
		for _, dir := range dirs {
			dir = resolveDir(d.Dir, dir)
			if b.files.IsDir(dir) {
				root.SourceRoots = append(root.SourceRoots, domain.SourceRoot{URL: b.urls.URL(dir), Role: role})
			}
		}
	}

	includeMain := kind == domain.ModuleKindMain || !d.SplitTests
	includeTest := kind == domain.ModuleKindTest || !d.SplitTests

	if includeMain {
		add(d.SourceDirs, domain.RoleSource)
		add(d.GeneratedSourceDirs, domain.RoleSource)
		add(d.ResourceDirs, domain.RoleResource)
	}
	if includeTest {
		add(d.TestSourceDirs, domain.RoleTestSource)
		add(d.GeneratedTestSourceDirs, domain.RoleTestSource)
		add(d.TestResourceDirs, domain.RoleTestResource)
	}

	if kind == domain.ModuleKindMain && d.OutputDir != "" {
		out := resolveDir(d.Dir, d.OutputDir)
		if b.files.IsDir(out) {
			root.ExcludedURLs = append(root.ExcludedURLs, b.urls.URL(out))
		}
	}
	return root
}

func resolveDir(base, dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(base, dir)
}
