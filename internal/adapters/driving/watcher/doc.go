// Package watcher provides a driving adapter that keeps the workspace in
// sync with build descriptors on disk.
//
// # Architectural Position
//
// The watcher is a driving adapter: like the CLI, it calls into the core
// through driving.ImportService. It uses fsnotify to observe every
// directory below the watched folders, skipping hidden directories and
// build output, and re-imports a folder once its descriptors have been
// quiet for the debounce period.
package watcher
