package driven

// FileProber answers existence questions about the filesystem.
// The graph builder only creates roots for paths that exist.
type FileProber interface {
	// Exists reports whether a file or directory exists at path.
	Exists(path string) bool

	// IsDir reports whether path exists and is a directory.
	IsDir(path string) bool
}
