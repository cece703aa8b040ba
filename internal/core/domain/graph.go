package domain

import "fmt"

// ModuleKind distinguishes production and test modules.
type ModuleKind string

// Module kinds.
const (
	ModuleKindMain ModuleKind = "main"
	ModuleKindTest ModuleKind = "test"
)

// SourceRole tags a source root with its purpose.
type SourceRole string

// Source root roles.
const (
	RoleSource       SourceRole = "source"
	RoleResource     SourceRole = "resource"
	RoleTestSource   SourceRole = "test-source"
	RoleTestResource SourceRole = "test-resource"
)

// IsValid reports whether the role is one of the known values.
func (r SourceRole) IsValid() bool {
	switch r {
	case RoleSource, RoleResource, RoleTestSource, RoleTestResource:
		return true
	default:
		return false
	}
}

// SourceRoot is a role-tagged directory inside a content root.
type SourceRoot struct {
	URL  string
	Role SourceRole
}

// ContentRoot is the physical directory backing a module.
type ContentRoot struct {
	URL          string
	SourceRoots  []SourceRoot
	ExcludedURLs []string
}

// LibraryRootKind distinguishes compiled artifacts from source attachments.
type LibraryRootKind string

// Library root kinds.
const (
	RootCompiled LibraryRootKind = "compiled"
	RootSources  LibraryRootKind = "sources"
)

// LibraryRoot is one file attached to a library.
type LibraryRoot struct {
	URL  string
	Kind LibraryRootKind
}

// LibraryProperties records the coordinate a library was created from.
type LibraryProperties struct {
	GroupID    string
	ArtifactID string
	Version    string
}

// Coordinate returns the properties as a coordinate.
func (p LibraryProperties) Coordinate() Coordinate {
	return Coordinate{GroupID: p.GroupID, ArtifactID: p.ArtifactID, Version: p.Version}
}

// Library is an external artifact shared by the modules of one graph.
// A graph holds at most one Library per coordinate.
type Library struct {
	// Name is the display name, e.g. "Maven: com.foo:bar:1.0".
	Name string

	// Coordinate is the deduplication key.
	Coordinate Coordinate

	// Roots lists the compiled root followed by an optional sources root.
	Roots []LibraryRoot

	// Properties is the one-to-one coordinate record.
	Properties *LibraryProperties
}

// RootsOf returns the roots of the given kind.
func (l *Library) RootsOf(kind LibraryRootKind) []LibraryRoot {
	var roots []LibraryRoot
	for _, r := range l.Roots {
		if r.Kind == kind {
			roots = append(roots, r)
		}
	}
	return roots
}

// DependencyKind is the kind of a dependency edge.
type DependencyKind string

// Dependency kinds.
const (
	DependencyLibrary      DependencyKind = "library"
	DependencyModule       DependencyKind = "module"
	DependencySDK          DependencyKind = "sdk"
	DependencyInheritedSDK DependencyKind = "inheritedSdk"
	DependencyModuleSource DependencyKind = "moduleSource"
)

// Dependency is a directed edge from a module.
// Only the fields relevant to Kind are set.
type Dependency struct {
	Kind DependencyKind

	// Library is set for library edges and points at the graph's entity.
	Library *Library

	// Module is the target module name for module edges.
	Module string

	// SDK is the SDK name for sdk edges.
	SDK string

	Scope    Scope
	Exported bool
}

// LibraryDependency creates a library edge.
func LibraryDependency(lib *Library, scope Scope, exported bool) Dependency {
	return Dependency{Kind: DependencyLibrary, Library: lib, Scope: scope, Exported: exported}
}

// ModuleDependency creates a module edge.
func ModuleDependency(target string, scope Scope, exported bool) Dependency {
	return Dependency{Kind: DependencyModule, Module: target, Scope: scope, Exported: exported}
}

// SDKDependency creates an explicit SDK edge.
func SDKDependency(name string) Dependency {
	return Dependency{Kind: DependencySDK, SDK: name}
}

// InheritedSDKDependency creates the placeholder resolved at merge time.
func InheritedSDKDependency() Dependency {
	return Dependency{Kind: DependencyInheritedSDK}
}

// ModuleSourceDependency creates the module-source marker.
func ModuleSourceDependency() Dependency {
	return Dependency{Kind: DependencyModuleSource}
}

// Platform is the compilation target of a compiler facet.
type Platform string

// Facet platforms.
const (
	PlatformJVM    Platform = "jvm"
	PlatformJS     Platform = "js"
	PlatformCommon Platform = "common"
)

// IsValid reports whether the platform is one of the known values.
func (p Platform) IsValid() bool {
	return p == PlatformJVM || p == PlatformJS || p == PlatformCommon
}

// Facet carries compiler settings detected from a compiler plugin.
type Facet struct {
	Platform        Platform
	APIVersion      string
	LanguageVersion string
	TargetVersion   string
}

// Module is a compilation unit.
type Module struct {
	Name         string
	Kind         ModuleKind
	Dependencies []Dependency
	ContentRoot  ContentRoot
	Facet        *Facet
}

// DependenciesOf returns the edges of the given kind.
func (m *Module) DependenciesOf(kind DependencyKind) []Dependency {
	var deps []Dependency
	for _, d := range m.Dependencies {
		if d.Kind == kind {
			deps = append(deps, d)
		}
	}
	return deps
}

// Graph is the entity graph produced by one import call.
type Graph struct {
	Modules   []*Module
	Libraries []*Library
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// IsEmpty reports whether the graph has no modules.
func (g *Graph) IsEmpty() bool {
	return g == nil || len(g.Modules) == 0
}

// Module returns the module with the given name.
func (g *Graph) Module(name string) (*Module, bool) {
	for _, m := range g.Modules {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Library returns the library with the given coordinate string.
func (g *Graph) Library(coordinate string) (*Library, bool) {
	for _, l := range g.Libraries {
		if l.Coordinate.String() == coordinate {
			return l, true
		}
	}
	return nil, false
}

// Validate checks identity and referential integrity.
// Library edges must point at the graph's own Library entity and module
// edges must name a module of the graph.
func (g *Graph) Validate() error {
	modules := make(map[string]bool, len(g.Modules))
	for _, m := range g.Modules {
		if m.Name == "" {
			return fmt.Errorf("%w: module without name", ErrInvalidInput)
		}
		if modules[m.Name] {
			return fmt.Errorf("%w: module %q", ErrDuplicateEntity, m.Name)
		}
		modules[m.Name] = true
	}

	libraries := make(map[string]*Library, len(g.Libraries))
	for _, l := range g.Libraries {
		key := l.Coordinate.String()
		if _, ok := libraries[key]; ok {
			return fmt.Errorf("%w: library %q", ErrDuplicateEntity, key)
		}
		libraries[key] = l
	}

	for _, m := range g.Modules {
		for _, d := range m.Dependencies {
			switch d.Kind {
			case DependencyLibrary:
				if d.Library == nil {
					return fmt.Errorf("%w: module %q has library edge without target", ErrDanglingReference, m.Name)
				}
				if libraries[d.Library.Coordinate.String()] != d.Library {
					return fmt.Errorf("%w: module %q references library %q",
						ErrDanglingReference, m.Name, d.Library.Coordinate)
				}
			case DependencyModule:
				if !modules[d.Module] {
					return fmt.Errorf("%w: module %q references module %q", ErrDanglingReference, m.Name, d.Module)
				}
			case DependencySDK:
				if d.SDK == "" {
					return fmt.Errorf("%w: module %q has sdk edge without name", ErrDanglingReference, m.Name)
				}
				continue
			case DependencyInheritedSDK, DependencyModuleSource:
				continue
			default:
				return fmt.Errorf("%w: dependency kind %q", ErrUnsupportedType, d.Kind)
			}

			// Library and module edges carry an explicit scope.
			if !d.Scope.IsValid() {
				return fmt.Errorf("%w: module %q has %s edge with scope %q", ErrUnsupportedType, m.Name, d.Kind, d.Scope)
			}
		}
	}
	return nil
}

// Clone returns a deep copy. Library sharing between modules is preserved.
func (g *Graph) Clone() *Graph {
	if g == nil {
		return nil
	}
	out := &Graph{
		Modules:   make([]*Module, 0, len(g.Modules)),
		Libraries: make([]*Library, 0, len(g.Libraries)),
	}

	copies := make(map[*Library]*Library, len(g.Libraries))
	cloneLib := func(l *Library) *Library {
		if c, ok := copies[l]; ok {
			return c
		}
		c := &Library{
			Name:       l.Name,
			Coordinate: l.Coordinate,
			Roots:      append([]LibraryRoot(nil), l.Roots...),
		}
		if l.Properties != nil {
			p := *l.Properties
			c.Properties = &p
		}
		copies[l] = c
		return c
	}

	for _, l := range g.Libraries {
		out.Libraries = append(out.Libraries, cloneLib(l))
	}

	for _, m := range g.Modules {
		c := &Module{
			Name: m.Name,
			Kind: m.Kind,
			ContentRoot: ContentRoot{
				URL:          m.ContentRoot.URL,
				SourceRoots:  append([]SourceRoot(nil), m.ContentRoot.SourceRoots...),
				ExcludedURLs: append([]string(nil), m.ContentRoot.ExcludedURLs...),
			},
		}
		if m.Facet != nil {
			f := *m.Facet
			c.Facet = &f
		}
		c.Dependencies = make([]Dependency, len(m.Dependencies))
		for i, d := range m.Dependencies {
			if d.Library != nil {
				d.Library = cloneLib(d.Library)
			}
			c.Dependencies[i] = d
		}
		out.Modules = append(out.Modules, c)
	}
	return out
}
