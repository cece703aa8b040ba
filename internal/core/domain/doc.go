// Package domain defines the core entities of the workspace import engine.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Graph: The entity graph produced by one import call
//   - Module, ContentRoot, SourceRoot: Project structure entities
//   - Library, LibraryProperties: Deduplicated external artifacts
//   - Dependency: A directed edge from a module to a library, module or SDK
//   - ModuleDescriptor: Build-system neutral input read from a project root
//   - Workspace: The shared store contents accumulating merged graphs
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
