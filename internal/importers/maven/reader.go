package maven

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/wsimport/internal/core/domain"
	"github.com/custodia-labs/wsimport/internal/core/ports/driven"
	"github.com/custodia-labs/wsimport/internal/logger"
)

// Ensure Reader implements the interface.
var _ driven.DescriptorReader = (*Reader)(nil)

// markerFile identifies a Maven project root.
const markerFile = "pom.xml"

// errModuleCycle marks a submodule path already visited in the walk.
var errModuleCycle = errors.New("module already visited")

// Reader reads Maven module descriptors from pom.xml files.
type Reader struct {
	files     driven.FileProber
	localRepo string
}

// NewReader creates a Maven reader. localRepo is the local repository used
// to locate artifacts; empty selects ~/.m2/repository.
func NewReader(files driven.FileProber, localRepo string) *Reader {
	if localRepo == "" {
		if home, err := os.UserHomeDir(); err == nil {
			localRepo = filepath.Join(home, ".m2", "repository")
		}
	}
	return &Reader{
		files:     files,
		localRepo: localRepo,
	}
}

// Name returns the build system identifier.
func (r *Reader) Name() string {
	return domain.ImporterMaven
}

// IsApplicable reports whether root holds a pom.xml.
func (r *Reader) IsApplicable(root string) bool {
	return r.files.Exists(filepath.Join(root, markerFile))
}

// LocalRepository returns the repository used to resolve artifacts.
func (r *Reader) LocalRepository() string {
	return r.localRepo
}

// inherited is the state a module passes to its submodules.
type inherited struct {
	groupID    string
	version    string
	properties map[string]string
	managed    map[string]pomDependency
	plugins    map[string]pomPlugin
}

// ReadModules walks the root POM and all declared submodules.
// Aggregator projects (packaging "pom") are walked but not returned.
func (r *Reader) ReadModules(ctx context.Context, root string) (*domain.ReadResult, error) {
	rootPOM := filepath.Join(root, markerFile)
	project, err := parsePOM(rootPOM)
	if err != nil {
		return nil, domain.NewImportError(
			"Cannot read Maven project",
			fmt.Sprintf("reading root descriptor %s: %v", rootPOM, err),
			err,
		)
	}

	result := &domain.ReadResult{}
	visited := map[string]bool{filepath.Clean(root): true}
	if err := r.walk(ctx, filepath.Clean(root), project, inherited{}, visited, result); err != nil {
		return nil, err
	}

	if len(result.Modules) == 0 {
		return nil, domain.NewImportError(
			"No Maven modules found",
			fmt.Sprintf("no modules discovered under %s after walking the module tree (%d submodules failed)",
				root, len(result.Failures)),
			nil,
		)
	}
	return result, nil
}

// walk describes project and descends into its submodules. Each submodule
// is read independently: a failure is recorded and its siblings continue.
// Only cancellation stops the walk.
func (r *Reader) walk(
	ctx context.Context,
	dir string,
	project *pomProject,
	parent inherited,
	visited map[string]bool,
	result *domain.ReadResult,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	descriptor, scope := r.describe(dir, project, parent)
	if descriptor.Packaging != "pom" {
		result.Modules = append(result.Modules, descriptor)
	}

	for _, module := range project.Modules {
		childDir, childPOM := modulePaths(dir, module)
		if visited[childDir] {
			result.Failures = append(result.Failures, domain.SubmoduleFailure{Path: childDir, Err: errModuleCycle})
			continue
		}
		visited[childDir] = true

		child, err := parsePOM(childPOM)
		if err != nil {
			result.Failures = append(result.Failures, domain.SubmoduleFailure{Path: childDir, Err: err})
			continue
		}
		if err := r.walk(ctx, childDir, child, scope, visited, result); err != nil {
			return err
		}
	}
	return nil
}

// modulePaths resolves a <module> entry, which names either a directory
// or a POM file.
func modulePaths(dir, module string) (string, string) {
	p := filepath.Join(dir, filepath.FromSlash(strings.TrimSpace(module)))
	if strings.HasSuffix(p, ".xml") {
		return filepath.Dir(p), p
	}
	return p, filepath.Join(p, markerFile)
}

// describe converts a POM into a descriptor and computes the state its
// submodules inherit.
func (r *Reader) describe(dir string, project *pomProject, parent inherited) (domain.ModuleDescriptor, inherited) {
	groupID := firstNonEmpty(project.GroupID, parentField(project.Parent, "groupId"), parent.groupID)
	version := firstNonEmpty(project.Version, parentField(project.Parent, "version"), parent.version)

	props := make(map[string]string, len(parent.properties)+8)
	maps.Copy(props, parent.properties)
	maps.Copy(props, project.Properties.flatten())
	props["project.groupId"] = groupID
	props["project.artifactId"] = project.ArtifactID
	props["project.version"] = version
	props["project.basedir"] = dir
	props["basedir"] = dir
	if project.Parent != nil {
		props["project.parent.groupId"] = project.Parent.GroupID
		props["project.parent.version"] = project.Parent.Version
	}

	managed := make(map[string]pomDependency, len(parent.managed)+len(project.DependencyManagement))
	maps.Copy(managed, parent.managed)
	for _, dep := range project.DependencyManagement {
		managed[interpolate(dep.GroupID, props)+":"+interpolate(dep.ArtifactID, props)] = dep
	}

	pluginMgmt := make(map[string]pomPlugin, len(parent.plugins)+len(project.Build.PluginManagement))
	maps.Copy(pluginMgmt, parent.plugins)
	for _, p := range project.Build.PluginManagement {
		pluginMgmt[pluginKey(p)] = p
	}

	packaging := firstNonEmpty(project.Packaging, "jar")
	outputDir := resolve(dir, firstNonEmpty(interpolate(project.Build.Directory, props), "target"))

	d := domain.ModuleDescriptor{
		Dir: dir,
		Coordinate: domain.Coordinate{
			GroupID:    interpolate(groupID, props),
			ArtifactID: interpolate(project.ArtifactID, props),
			Version:    interpolate(version, props),
		},
		Packaging:               packaging,
		Properties:              resolveProperties(props),
		SourceDirs:              r.dirs(dir, props, []string{project.Build.SourceDirectory}, "src/main/java", "src/main/kotlin"),
		ResourceDirs:            r.dirs(dir, props, project.Build.Resources, "src/main/resources"),
		TestSourceDirs:          r.dirs(dir, props, []string{project.Build.TestSourceDirectory}, "src/test/java", "src/test/kotlin"),
		TestResourceDirs:        r.dirs(dir, props, project.Build.TestResources, "src/test/resources"),
		GeneratedSourceDirs:     []string{filepath.Join(outputDir, "generated-sources", "annotations")},
		GeneratedTestSourceDirs: []string{filepath.Join(outputDir, "generated-test-sources", "test-annotations")},
		OutputDir:               outputDir,
		SplitTests:              true,
	}

	for _, dep := range project.Dependencies {
		if desc, ok := r.dependency(dep, props, managed); ok {
			d.Dependencies = append(d.Dependencies, desc)
		}
	}
	for _, p := range project.Build.Plugins {
		d.Plugins = append(d.Plugins, plugin(p, pluginMgmt, props))
	}

	logger.Debug("maven: read %s (%s, %d dependencies)", d.Coordinate, dir, len(d.Dependencies))

	return d, inherited{
		groupID:    groupID,
		version:    version,
		properties: props,
		managed:    managed,
		plugins:    pluginMgmt,
	}
}

// resolveProperties expands placeholders inside property values. The raw
// map is what submodules inherit, so a child overriding a referenced
// property changes the values that reference it.
func resolveProperties(props map[string]string) map[string]string {
	resolved := make(map[string]string, len(props))
	for k, v := range props {
		resolved[k] = interpolate(v, props)
	}
	return resolved
}

// dirs returns the configured directories, or the conventional defaults
// when none is configured.
func (r *Reader) dirs(base string, props map[string]string, configured []string, defaults ...string) []string {
	var out []string
	for _, c := range configured {
		if c = interpolate(c, props); c != "" {
			out = append(out, resolve(base, c))
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, d := range defaults {
		out = append(out, resolve(base, d))
	}
	return out
}

// dependency converts a declared dependency, filling its version from
// dependency management. Returns false for POM-typed dependencies, which
// carry no artifact.
func (r *Reader) dependency(
	dep pomDependency,
	props map[string]string,
	managed map[string]pomDependency,
) (domain.DependencyDescriptor, bool) {
	groupID := interpolate(dep.GroupID, props)
	artifactID := interpolate(dep.ArtifactID, props)
	version := interpolate(dep.Version, props)
	scope := dep.Scope

	if m, ok := managed[groupID+":"+artifactID]; ok {
		if version == "" {
			version = interpolate(m.Version, props)
		}
		if scope == "" {
			scope = m.Scope
		}
	}

	ext, classifier := artifactType(dep.Type, dep.Classifier)
	if ext == "" {
		return domain.DependencyDescriptor{}, false
	}

	desc := domain.DependencyDescriptor{
		Coordinate: domain.Coordinate{GroupID: groupID, ArtifactID: artifactID, Version: version},
		Scope:      scope,
	}
	if groupID != "" && artifactID != "" && version != "" && !unresolved(version) && !unresolved(groupID) {
		desc.File = r.artifactPath(desc.Coordinate, classifier, ext)
	}
	return desc, true
}

// artifactPath locates an artifact in the local repository layout.
func (r *Reader) artifactPath(c domain.Coordinate, classifier, ext string) string {
	name := c.ArtifactID + "-" + c.Version
	if classifier != "" {
		name += "-" + classifier
	}
	return filepath.Join(
		r.localRepo,
		filepath.FromSlash(strings.ReplaceAll(c.GroupID, ".", "/")),
		c.ArtifactID,
		c.Version,
		name+"."+ext,
	)
}

// artifactType maps a dependency type onto a file extension and classifier.
// An empty extension means the dependency has no artifact file.
func artifactType(typ, classifier string) (string, string) {
	switch strings.TrimSpace(typ) {
	case "", "jar", "bundle", "maven-plugin", "ejb":
		return "jar", classifier
	case "test-jar":
		return "jar", firstNonEmpty(classifier, "tests")
	case "pom":
		return "", ""
	default:
		return typ, classifier
	}
}

// plugin converts a build plugin, layering its configuration over the
// managed configuration.
func plugin(p pomPlugin, managed map[string]pomPlugin, props map[string]string) domain.PluginDescriptor {
	config := make(map[string]string)
	if m, ok := managed[pluginKey(p)]; ok {
		for k, v := range m.Configuration.flatten() {
			config[k] = interpolate(v, props)
		}
	}
	for k, v := range p.Configuration.flatten() {
		config[k] = interpolate(v, props)
	}

	var goals []string
	for _, e := range p.Executions {
		for _, g := range e.Goals {
			goals = append(goals, strings.TrimSpace(g))
		}
	}

	return domain.PluginDescriptor{
		Coordinate: domain.Coordinate{
			GroupID:    firstNonEmpty(interpolate(p.GroupID, props), defaultPluginGroup),
			ArtifactID: interpolate(p.ArtifactID, props),
			Version:    interpolate(p.Version, props),
		},
		Configuration: config,
		Goals:         goals,
	}
}

func pluginKey(p pomPlugin) string {
	return firstNonEmpty(p.GroupID, defaultPluginGroup) + ":" + p.ArtifactID
}

func parentField(p *pomParent, field string) string {
	if p == nil {
		return ""
	}
	switch field {
	case "groupId":
		return p.GroupID
	case "version":
		return p.Version
	default:
		return ""
	}
}

func resolve(base, p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
