package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/wsimport/internal/core/domain"
	"github.com/custodia-labs/wsimport/internal/core/ports/driving"
	"github.com/custodia-labs/wsimport/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driving.FolderWatcher = (*Watcher)(nil)

// DefaultDebounce is the quiet period after the last change before a
// folder is re-imported.
const DefaultDebounce = 500 * time.Millisecond

// DefaultTriggers are the descriptor file names that cause a re-import.
var DefaultTriggers = []string{"pom.xml", "workspace.json"}

// skippedDirs are never watched.
var skippedDirs = map[string]bool{
	"target":       true,
	"node_modules": true,
}

// ReportFunc receives the outcome of each re-import.
type ReportFunc func(report *domain.FolderReport, err error)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a re-import.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithTriggers replaces the descriptor file names that cause a re-import.
func WithTriggers(names ...string) Option {
	return func(w *Watcher) {
		w.triggers = make(map[string]bool, len(names))
		for _, n := range names {
			w.triggers[n] = true
		}
	}
}

// WithReport sets the callback invoked after each re-import.
func WithReport(fn ReportFunc) Option {
	return func(w *Watcher) {
		w.onReport = fn
	}
}

// Watcher re-imports folders through an ImportService when a descriptor
// below them changes. Changes are debounced per folder.
type Watcher struct {
	imports  driving.ImportService
	debounce time.Duration
	triggers map[string]bool
	onReport ReportFunc

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a watcher that re-imports through imports.
func New(imports driving.ImportService, opts ...Option) *Watcher {
	w := &Watcher{
		imports:  imports,
		debounce: DefaultDebounce,
		pending:  make(map[string]*time.Timer),
	}
	WithTriggers(DefaultTriggers...)(w)
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch watches folders recursively until ctx is cancelled.
// Returns nil on cancellation.
func (w *Watcher) Watch(ctx context.Context, folders []string) error {
	if len(folders) == 0 {
		return errors.New("no folders to watch")
	}

	roots := make([]string, 0, len(folders))
	for _, f := range folders {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("resolve folder %s: %w", f, err)
		}
		roots = append(roots, abs)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	for _, root := range roots {
		if err := addRecursive(fsw, root); err != nil {
			return fmt.Errorf("watch %s: %w", root, err)
		}
		logger.Debug("watching %s", root)
	}

	var wg sync.WaitGroup
	defer func() {
		w.stopPending(&wg)
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, fsw, roots, event, &wg)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: %v", err)
		}
	}
}

// handleEvent schedules a re-import for descriptor changes and extends
// the watch to new directories.
func (w *Watcher) handleEvent(
	ctx context.Context,
	fsw *fsnotify.Watcher,
	roots []string,
	event fsnotify.Event,
	wg *sync.WaitGroup,
) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := addRecursive(fsw, event.Name); err != nil {
				logger.Debug("watch %s: %v", event.Name, err)
			}
			// Descriptors created with the directory produce no event.
			if hasTrigger(event.Name, w.triggers) {
				w.schedule(ctx, folderFor(roots, event.Name), wg)
			}
			return
		}
	}

	if !w.triggers[filepath.Base(event.Name)] {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	folder := folderFor(roots, event.Name)
	if folder == "" {
		return
	}
	logger.Debug("%s: %s", event.Op, event.Name)
	w.schedule(ctx, folder, wg)
}

// schedule starts or restarts the folder's debounce timer.
func (w *Watcher) schedule(ctx context.Context, folder string, wg *sync.WaitGroup) {
	if folder == "" {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[folder]; ok && t.Stop() {
		t.Reset(w.debounce)
		return
	}

	wg.Add(1)
	var t *time.Timer
	t = time.AfterFunc(w.debounce, func() {
		defer wg.Done()

		w.mu.Lock()
		if w.pending[folder] == t {
			delete(w.pending, folder)
		}
		w.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		w.reimport(ctx, folder)
	})
	w.pending[folder] = t
}

// stopPending cancels timers that have not fired yet.
func (w *Watcher) stopPending(wg *sync.WaitGroup) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for folder, t := range w.pending {
		if t.Stop() {
			wg.Done()
		}
		delete(w.pending, folder)
	}
}

func (w *Watcher) reimport(ctx context.Context, folder string) {
	logger.Info("re-importing %s", folder)
	report, err := w.imports.ImportFolder(ctx, folder)
	if err != nil && !errors.Is(err, domain.ErrImportCancelled) {
		logger.Warn("re-import %s: %v", folder, err)
	}
	if w.onReport != nil {
		w.onReport(report, err)
	}
}

// folderFor returns the deepest root containing path, or "" if none does.
func folderFor(roots []string, path string) string {
	best := ""
	for _, root := range roots {
		if path != root && !strings.HasPrefix(path, root+string(filepath.Separator)) {
			continue
		}
		if len(root) > len(best) {
			best = root
		}
	}
	return best
}

// addRecursive watches dir and every non-skipped directory below it.
func addRecursive(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		return fsw.Add(p)
	})
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || skippedDirs[name]
}

// hasTrigger reports whether dir or a directory below it holds a trigger file.
func hasTrigger(dir string, triggers map[string]bool) bool {
	found := false
	_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || found {
			return filepath.SkipAll
		}
		if d.IsDir() && p != dir && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if !d.IsDir() && triggers[d.Name()] {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	return found
}

// Triggers returns the trigger file names in sorted order.
func (w *Watcher) Triggers() []string {
	names := make([]string, 0, len(w.triggers))
	for n := range w.triggers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
