// Package logger provides the engine's diagnostic output.
//
// Debug and Info lines are printed only with --verbose and explain why a
// strategy was chosen, skipped or failed. Warnings report tolerated
// failures such as skipped submodules and are always printed. Each line is
// written under one lock so concurrent folder imports never interleave
// within a line.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type level string

const (
	levelDebug level = "DEBUG"
	levelInfo  level = "INFO"
	levelWarn  level = "WARN"
)

var (
	mu      sync.Mutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables Debug, Info and Section output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose reports whether verbose output is enabled.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose
}

// SetOutput redirects log output. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a [DEBUG] line in verbose mode.
func Debug(format string, args ...any) { write(levelDebug, "", format, args...) }

// Info prints an [INFO] line in verbose mode.
func Info(format string, args ...any) { write(levelInfo, "", format, args...) }

// Warn prints a [WARN] line regardless of verbose mode.
func Warn(format string, args ...any) { write(levelWarn, "", format, args...) }

// Section prints a header separating one import from the next.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Folder tags every line with the folder being imported.
type Folder struct {
	path string
}

// ForFolder returns a logger for lines about one import root.
func ForFolder(path string) Folder {
	return Folder{path: path}
}

// Debug prints a tagged [DEBUG] line in verbose mode.
func (f Folder) Debug(format string, args ...any) { write(levelDebug, f.path, format, args...) }

// Info prints a tagged [INFO] line in verbose mode.
func (f Folder) Info(format string, args ...any) { write(levelInfo, f.path, format, args...) }

// Warn prints a tagged [WARN] line regardless of verbose mode.
func (f Folder) Warn(format string, args ...any) { write(levelWarn, f.path, format, args...) }

func write(lvl level, tag, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if lvl != levelWarn && !verbose {
		return
	}

	msg := fmt.Sprintf(format, args...)
	if tag != "" {
		msg = tag + ": " + msg
	}
	fmt.Fprintf(output, "[%s] %s\n", lvl, msg)
}
