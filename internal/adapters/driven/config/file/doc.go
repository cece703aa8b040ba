// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage at ~/.wsimport/config.toml
//
// A typical configuration:
//
//	[paths]
//	policy = "root-relative"
//
//	[maven]
//	local_repository = "/opt/m2/repository"
//
//	[importers]
//	order = ["workspace-json", "maven"]
//
//	[store]
//	backend = "sqlite"
package file
