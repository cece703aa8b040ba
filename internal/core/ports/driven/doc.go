// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Importer: One build-system import strategy
//   - DescriptorReader: Reads module descriptors for one build system
//   - FileProber: Filesystem existence checks
//   - SDKLocator: Installed SDK discovery
//   - WorkspaceStore: Shared workspace persistence
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or importer package
package driven
