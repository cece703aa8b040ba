package domain

import "fmt"

// DependencyDescriptor is a dependency declared by a build descriptor.
type DependencyDescriptor struct {
	Coordinate Coordinate

	// Scope is the declared scope string, possibly empty.
	Scope string

	// File is the resolved artifact location. Empty when the reader could
	// not locate one.
	File string
}

// PluginDescriptor is a build plugin declared by a module.
type PluginDescriptor struct {
	Coordinate Coordinate

	// Configuration holds flattened plugin configuration values.
	Configuration map[string]string

	// Goals lists the goal names of all declared executions.
	Goals []string
}

// ModuleDescriptor is the build-system neutral description of one module.
// Descriptor readers produce it; the graph builder consumes it.
type ModuleDescriptor struct {
	// Dir is the module's physical directory.
	Dir string

	Coordinate Coordinate
	Packaging  string

	Dependencies []DependencyDescriptor

	// Properties are the effective declared build properties.
	Properties map[string]string

	SourceDirs              []string
	ResourceDirs            []string
	TestSourceDirs          []string
	TestResourceDirs        []string
	GeneratedSourceDirs     []string
	GeneratedTestSourceDirs []string

	// OutputDir is the build-output directory, excluded from the content root.
	OutputDir string

	Plugins []PluginDescriptor

	// SplitTests reports whether the build system models separate main and
	// test compilation units.
	SplitTests bool
}

// Plugin returns the plugin with the given group and artifact.
func (d *ModuleDescriptor) Plugin(groupID, artifactID string) (*PluginDescriptor, bool) {
	for i := range d.Plugins {
		p := &d.Plugins[i]
		if p.Coordinate.GroupID == groupID && p.Coordinate.ArtifactID == artifactID {
			return p, true
		}
	}
	return nil, false
}

// Property returns a declared property value.
func (d *ModuleDescriptor) Property(key string) (string, bool) {
	v, ok := d.Properties[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// SubmoduleFailure records a submodule that could not be read.
// The walk that produced it continued with the remaining modules.
type SubmoduleFailure struct {
	// Path is the submodule directory.
	Path string
	Err  error
}

// String returns a warning line for the failure.
func (f SubmoduleFailure) String() string {
	return fmt.Sprintf("skipped submodule %s: %v", f.Path, f.Err)
}

// ReadResult is the outcome of a descriptor tree walk.
type ReadResult struct {
	Modules  []ModuleDescriptor
	Failures []SubmoduleFailure
}
