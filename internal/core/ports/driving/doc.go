// Package driving defines interfaces that external actors (CLI, watchers)
// use to interact with core services. These are the "driving" ports in
// hexagonal architecture terminology - they drive the application.
//
// Implementations of the service interfaces live in internal/core/services.
// FolderWatcher is implemented by the watcher adapter, which itself drives
// ImportService.
package driving
