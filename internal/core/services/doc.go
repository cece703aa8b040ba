// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// # Import Pipeline
//
// An import runs in three stages:
//
//   - ImportOrchestrator tries the configured strategies in priority order
//     and keeps the first graph produced
//   - DescriptorImporter turns module descriptors into a graph through the
//     GraphBuilder, with one dedup context per import call
//   - WorkspaceService merges the graph into the shared store and resolves
//     inherited SDK edges against the lazily created default SDK
//
// ImportService ties the stages together and bounds concurrent folder
// imports. ImporterRegistry assembles the strategy list from settings.
//
// Services are pure Go with no CGO.
package services
