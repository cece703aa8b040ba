package filesystem

import (
	"os"

	"github.com/custodia-labs/wsimport/internal/core/ports/driven"
)

// Ensure Prober implements the interface.
var _ driven.FileProber = (*Prober)(nil)

// Prober answers existence questions with os.Stat.
type Prober struct{}

// NewProber creates a filesystem prober.
func NewProber() *Prober {
	return &Prober{}
}

// Exists reports whether a file or directory exists at path.
func (p *Prober) Exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func (p *Prober) IsDir(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
