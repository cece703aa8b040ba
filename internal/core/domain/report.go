package domain

import "time"

// ImportResult is the outcome of running the strategy list on one folder.
type ImportResult struct {
	// Graph is nil when no strategy produced one.
	Graph *Graph

	// Strategy names the importer that produced Graph.
	Strategy string

	// Warnings are non-fatal problems: failed strategies and skipped
	// submodules.
	Warnings []string

	// Unresolved lists the coordinates whose artifacts were missing in the
	// winning attempt.
	Unresolved []string
}

// FolderReport summarises one folder import including the merge.
type FolderReport struct {
	RunID      string
	Folder     string
	Strategy   string
	Modules    int
	Libraries  int
	Warnings   []string
	Unresolved []string

	// FellBack is true when no strategy applied and the folder was merged
	// as an empty workspace.
	FellBack bool

	StartedAt time.Time
	Duration  time.Duration
}
