package domain

import "sort"

// Workspace is the content of the shared workspace store.
// It accumulates the graphs contributed by imported folders. It is not
// safe for concurrent use; stores guard it with a single writer.
type Workspace struct {
	// Contributions maps a folder path to the graph it contributed.
	Contributions map[string]*Graph

	// DefaultSDK is created on first need and kept for the store lifetime.
	DefaultSDK *SDK
}

// NewWorkspace creates an empty workspace.
func NewWorkspace() *Workspace {
	return &Workspace{
		Contributions: make(map[string]*Graph),
	}
}

// Replace sets the folder's contribution, discarding any previous one.
func (w *Workspace) Replace(folder string, g *Graph) {
	w.Contributions[folder] = g
}

// Remove drops the folder's contribution.
// Returns false if the folder had none.
func (w *Workspace) Remove(folder string) bool {
	if _, ok := w.Contributions[folder]; !ok {
		return false
	}
	delete(w.Contributions, folder)
	return true
}

// Folders returns the contributing folders in sorted order.
func (w *Workspace) Folders() []string {
	folders := make([]string, 0, len(w.Contributions))
	for f := range w.Contributions {
		folders = append(folders, f)
	}
	sort.Strings(folders)
	return folders
}

// Modules returns every module in the workspace, ordered by folder.
func (w *Workspace) Modules() []*Module {
	var modules []*Module
	for _, f := range w.Folders() {
		if g := w.Contributions[f]; g != nil {
			modules = append(modules, g.Modules...)
		}
	}
	return modules
}

// Clone returns a deep copy of the workspace.
func (w *Workspace) Clone() *Workspace {
	out := NewWorkspace()
	for f, g := range w.Contributions {
		out.Contributions[f] = g.Clone()
	}
	if w.DefaultSDK != nil {
		sdk := *w.DefaultSDK
		out.DefaultSDK = &sdk
	}
	return out
}
