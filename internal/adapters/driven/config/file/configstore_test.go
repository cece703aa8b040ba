package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ConfigFileName), store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	_, err := NewConfigStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("[paths\npolicy ="), 0600))

	_, err := NewConfigStore(dir)
	assert.Error(t, err)
}

func TestConfigStore_ReadsNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := `
[paths]
policy = "root-relative"

[sdk]
roots = ["/usr/lib/jvm", "/opt/jdks"]

[import]
concurrency = 8
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "root-relative", store.String("paths.policy"))
	assert.Equal(t, []string{"/usr/lib/jvm", "/opt/jdks"}, store.Strings("sdk.roots"))
	n, ok := store.Int("import.concurrency")
	assert.True(t, ok)
	assert.Equal(t, 8, n)

	_, ok = store.Value("missing.key")
	assert.False(t, ok)
	assert.Empty(t, store.String("missing.key"))
	_, ok = store.Int("paths.policy")
	assert.False(t, ok)
	assert.Nil(t, store.Strings("paths.policy"))
}

func TestConfigStore_SetPersistsAsTables(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("paths.policy", "file-name"))
	require.NoError(t, store.Set("importers.order", []string{"maven"}))
	require.NoError(t, store.Set("import.concurrency", 2))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[paths]")

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "file-name", reloaded.String("paths.policy"))
	assert.Equal(t, []string{"maven"}, reloaded.Strings("importers.order"))
	n, _ := reloaded.Int("import.concurrency")
	assert.Equal(t, 2, n)
}

func TestConfigStore_UnsetPersists(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("store.backend", "sqlite"))
	require.NoError(t, store.Set("paths.policy", "file-name"))
	require.NoError(t, store.Unset("store.backend"))
	require.NoError(t, store.Unset("never.set"))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	_, ok := reloaded.Value("store.backend")
	assert.False(t, ok)
	assert.Equal(t, "file-name", reloaded.String("paths.policy"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("store.backend", "sqlite")
		}()
		go func() {
			defer wg.Done()
			_ = store.String("store.backend")
		}()
	}
	wg.Wait()

	assert.Equal(t, "sqlite", store.String("store.backend"))
}

func TestNestMap(t *testing.T) {
	flat := map[string]any{
		"paths.policy":  "absolute",
		"sdk.roots":     []string{"/a"},
		"sdk.java_home": "/jdk",
		"top":           1,
	}

	nested := nestMap(flat)

	assert.Equal(t, map[string]any{"policy": "absolute"}, nested["paths"])
	assert.Equal(t, map[string]any{"roots": []string{"/a"}, "java_home": "/jdk"}, nested["sdk"])
	assert.Equal(t, flatten(nested), flat)
}

func flatten(m map[string]any) map[string]any {
	return flattenMap(m, "")
}
