// Package codec converts entity graphs to and from canonical JSON.
//
// The document shape is:
//
//	{
//	  "modules": [ { "name", "kind", "dependencies", "contentRoot", "facet" } ],
//	  "libraries": [ { "coordinate", "name", "roots" } ]
//	}
//
// Encoding is deterministic: encode, decode and re-encode yields the same
// bytes. Library edges reference libraries by coordinate, and decoding
// restores a single shared *domain.Library per coordinate.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/wsimport/internal/core/domain"
)

type document struct {
	Modules   []moduleDoc  `json:"modules"`
	Libraries []libraryDoc `json:"libraries"`
}

type moduleDoc struct {
	Name         string          `json:"name"`
	Kind         string          `json:"kind"`
	Dependencies []dependencyDoc `json:"dependencies"`
	ContentRoot  *contentRootDoc `json:"contentRoot,omitempty"`
	Facet        *facetDoc       `json:"facet,omitempty"`
}

type dependencyDoc struct {
	Kind       string `json:"kind"`
	Coordinate string `json:"coordinate,omitempty"`
	Target     string `json:"target,omitempty"`
	Name       string `json:"name,omitempty"`
	Scope      string `json:"scope,omitempty"`
	Exported   *bool  `json:"exported,omitempty"`
}

type contentRootDoc struct {
	URL          string          `json:"url"`
	SourceRoots  []sourceRootDoc `json:"sourceRoots"`
	ExcludedURLs []string        `json:"excludedUrls"`
}

type sourceRootDoc struct {
	URL  string `json:"url"`
	Role string `json:"role"`
}

type facetDoc struct {
	Platform        string `json:"platform"`
	APIVersion      string `json:"apiVersion,omitempty"`
	LanguageVersion string `json:"languageVersion,omitempty"`
	TargetVersion   string `json:"targetVersion,omitempty"`
}

type libraryDoc struct {
	Coordinate string    `json:"coordinate"`
	Name       string    `json:"name,omitempty"`
	Roots      []rootDoc `json:"roots"`
}

type rootDoc struct {
	URL  string `json:"url"`
	Kind string `json:"kind"`
}

// Encode renders a graph as canonical JSON.
// The graph must pass domain.Graph.Validate.
func Encode(g *domain.Graph) ([]byte, error) {
	if g == nil {
		g = domain.NewGraph()
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("encode graph: %w", err)
	}

	doc := document{
		Modules:   make([]moduleDoc, 0, len(g.Modules)),
		Libraries: make([]libraryDoc, 0, len(g.Libraries)),
	}
	for _, m := range g.Modules {
		doc.Modules = append(doc.Modules, encodeModule(m))
	}
	for _, l := range g.Libraries {
		roots := make([]rootDoc, 0, len(l.Roots))
		for _, r := range l.Roots {
			roots = append(roots, rootDoc{URL: r.URL, Kind: string(r.Kind)})
		}
		doc.Libraries = append(doc.Libraries, libraryDoc{
			Coordinate: l.Coordinate.String(),
			Name:       l.Name,
			Roots:      roots,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode graph: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeModule(m *domain.Module) moduleDoc {
	md := moduleDoc{
		Name:         m.Name,
		Kind:         string(m.Kind),
		Dependencies: make([]dependencyDoc, 0, len(m.Dependencies)),
	}
	for _, d := range m.Dependencies {
		md.Dependencies = append(md.Dependencies, encodeDependency(d))
	}

	if m.ContentRoot.URL != "" {
		cr := &contentRootDoc{
			URL:          m.ContentRoot.URL,
			SourceRoots:  make([]sourceRootDoc, 0, len(m.ContentRoot.SourceRoots)),
			ExcludedURLs: append(make([]string, 0, len(m.ContentRoot.ExcludedURLs)), m.ContentRoot.ExcludedURLs...),
		}
		for _, sr := range m.ContentRoot.SourceRoots {
			cr.SourceRoots = append(cr.SourceRoots, sourceRootDoc{URL: sr.URL, Role: string(sr.Role)})
		}
		md.ContentRoot = cr
	}

	if m.Facet != nil {
		md.Facet = &facetDoc{
			Platform:        string(m.Facet.Platform),
			APIVersion:      m.Facet.APIVersion,
			LanguageVersion: m.Facet.LanguageVersion,
			TargetVersion:   m.Facet.TargetVersion,
		}
	}
	return md
}

func encodeDependency(d domain.Dependency) dependencyDoc {
	exported := d.Exported
	switch d.Kind {
	case domain.DependencyLibrary:
		return dependencyDoc{
			Kind:       string(d.Kind),
			Coordinate: d.Library.Coordinate.String(),
			Scope:      string(d.Scope),
			Exported:   &exported,
		}
	case domain.DependencyModule:
		return dependencyDoc{
			Kind:     string(d.Kind),
			Target:   d.Module,
			Scope:    string(d.Scope),
			Exported: &exported,
		}
	case domain.DependencySDK:
		return dependencyDoc{Kind: string(d.Kind), Name: d.SDK}
	default:
		return dependencyDoc{Kind: string(d.Kind)}
	}
}

// Decode parses canonical JSON into a graph.
// Documents naming an edge target absent from the document are rejected
// with domain.ErrDanglingReference.
func Decode(data []byte) (*domain.Graph, error) {
	var doc document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode graph: %w", domain.ErrInvalidInput, err)
	}

	g := domain.NewGraph()
	libraries := make(map[string]*domain.Library, len(doc.Libraries))
	for _, ld := range doc.Libraries {
		lib, err := decodeLibrary(ld)
		if err != nil {
			return nil, err
		}
		if _, ok := libraries[ld.Coordinate]; ok {
			return nil, fmt.Errorf("%w: library %q", domain.ErrDuplicateEntity, ld.Coordinate)
		}
		libraries[ld.Coordinate] = lib
		g.Libraries = append(g.Libraries, lib)
	}

	names := make(map[string]bool, len(doc.Modules))
	for _, md := range doc.Modules {
		if names[md.Name] {
			return nil, fmt.Errorf("%w: module %q", domain.ErrDuplicateEntity, md.Name)
		}
		names[md.Name] = true
	}

	for _, md := range doc.Modules {
		m, err := decodeModule(md, libraries, names)
		if err != nil {
			return nil, err
		}
		g.Modules = append(g.Modules, m)
	}

	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}
	return g, nil
}

func decodeLibrary(ld libraryDoc) (*domain.Library, error) {
	c, err := domain.ParseCoordinate(ld.Coordinate)
	if err != nil {
		return nil, err
	}
	lib := &domain.Library{
		Name:       ld.Name,
		Coordinate: c,
		Properties: &domain.LibraryProperties{
			GroupID:    c.GroupID,
			ArtifactID: c.ArtifactID,
			Version:    c.Version,
		},
	}
	for _, r := range ld.Roots {
		kind := domain.LibraryRootKind(r.Kind)
		if kind != domain.RootCompiled && kind != domain.RootSources {
			return nil, fmt.Errorf("%w: library %q root kind %q", domain.ErrUnsupportedType, ld.Coordinate, r.Kind)
		}
		lib.Roots = append(lib.Roots, domain.LibraryRoot{URL: r.URL, Kind: kind})
	}
	return lib, nil
}

func decodeModule(md moduleDoc, libraries map[string]*domain.Library, names map[string]bool) (*domain.Module, error) {
	kind := domain.ModuleKind(md.Kind)
	if kind != domain.ModuleKindMain && kind != domain.ModuleKindTest {
		return nil, fmt.Errorf("%w: module %q kind %q", domain.ErrUnsupportedType, md.Name, md.Kind)
	}
	m := &domain.Module{Name: md.Name, Kind: kind}

	for _, dd := range md.Dependencies {
		d, err := decodeDependency(md.Name, dd, libraries, names)
		if err != nil {
			return nil, err
		}
		m.Dependencies = append(m.Dependencies, d)
	}

	if md.ContentRoot != nil {
		m.ContentRoot.URL = md.ContentRoot.URL
		for _, sr := range md.ContentRoot.SourceRoots {
			role := domain.SourceRole(sr.Role)
			if !role.IsValid() {
				return nil, fmt.Errorf("%w: module %q source role %q", domain.ErrUnsupportedType, md.Name, sr.Role)
			}
			m.ContentRoot.SourceRoots = append(m.ContentRoot.SourceRoots, domain.SourceRoot{URL: sr.URL, Role: role})
		}
		if len(md.ContentRoot.ExcludedURLs) > 0 {
			m.ContentRoot.ExcludedURLs = append([]string(nil), md.ContentRoot.ExcludedURLs...)
		}
	}

	if md.Facet != nil {
		platform := domain.Platform(md.Facet.Platform)
		if !platform.IsValid() {
			return nil, fmt.Errorf("%w: module %q platform %q", domain.ErrUnsupportedType, md.Name, md.Facet.Platform)
		}
		m.Facet = &domain.Facet{
			Platform:        platform,
			APIVersion:      md.Facet.APIVersion,
			LanguageVersion: md.Facet.LanguageVersion,
			TargetVersion:   md.Facet.TargetVersion,
		}
	}
	return m, nil
}

func decodeDependency(
	module string,
	dd dependencyDoc,
	libraries map[string]*domain.Library,
	names map[string]bool,
) (domain.Dependency, error) {
	scope := domain.Scope(dd.Scope)
	if dd.Scope == "" {
		scope = domain.ScopeCompile
	} else if !scope.IsValid() {
		return domain.Dependency{}, fmt.Errorf("%w: module %q scope %q", domain.ErrUnsupportedType, module, dd.Scope)
	}
	exported := dd.Exported != nil && *dd.Exported

	switch domain.DependencyKind(dd.Kind) {
	case domain.DependencyLibrary:
		lib, ok := libraries[dd.Coordinate]
		if !ok {
			return domain.Dependency{}, fmt.Errorf("%w: module %q references library %q",
				domain.ErrDanglingReference, module, dd.Coordinate)
		}
		return domain.LibraryDependency(lib, scope, exported), nil
	case domain.DependencyModule:
		if !names[dd.Target] {
			return domain.Dependency{}, fmt.Errorf("%w: module %q references module %q",
				domain.ErrDanglingReference, module, dd.Target)
		}
		return domain.ModuleDependency(dd.Target, scope, exported), nil
	case domain.DependencySDK:
		if dd.Name == "" {
			return domain.Dependency{}, fmt.Errorf("%w: module %q sdk edge without name", domain.ErrInvalidInput, module)
		}
		return domain.SDKDependency(dd.Name), nil
	case domain.DependencyInheritedSDK:
		return domain.InheritedSDKDependency(), nil
	case domain.DependencyModuleSource:
		return domain.ModuleSourceDependency(), nil
	default:
		return domain.Dependency{}, fmt.Errorf("%w: module %q dependency kind %q", domain.ErrUnsupportedType, module, dd.Kind)
	}
}
