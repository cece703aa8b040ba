package driving

import "context"

// FolderWatcher re-imports folders when their build descriptors change.
type FolderWatcher interface {
	// Watch blocks until ctx is cancelled, re-importing a folder after
	// each burst of descriptor changes below it.
	Watch(ctx context.Context, folders []string) error
}
