package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndRead(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("paths.policy", "root-relative"))
	require.NoError(t, store.Set("import.concurrency", int64(8)))
	require.NoError(t, store.Set("sdk.roots", []any{"/usr/lib/jvm", "/opt"}))
	require.NoError(t, store.Set("importers.order", []string{"maven"}))

	assert.Equal(t, "root-relative", store.String("paths.policy"))
	n, ok := store.Int("import.concurrency")
	assert.True(t, ok)
	assert.Equal(t, 8, n)
	assert.Equal(t, []string{"/usr/lib/jvm", "/opt"}, store.Strings("sdk.roots"))
	assert.Equal(t, []string{"maven"}, store.Strings("importers.order"))
}

func TestConfigStore_TypeMismatch(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("key", "text"))

	_, ok := store.Int("key")
	assert.False(t, ok)
	assert.Nil(t, store.Strings("key"))
	assert.Empty(t, store.String("missing"))
}

func TestConfigStore_RejectsUnsupportedValues(t *testing.T) {
	store := NewConfigStore()

	tests := []struct {
		name  string
		value any
	}{
		{"bool", true},
		{"fraction", 1.5},
		{"mixed list", []any{"a", 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, store.Set("key", tt.value))
			_, ok := store.Value("key")
			assert.False(t, ok)
		})
	}
}

func TestConfigStore_StringsReturnsCopy(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("sdk.roots", []string{"/a"}))

	roots := store.Strings("sdk.roots")
	roots[0] = "/changed"

	assert.Equal(t, []string{"/a"}, store.Strings("sdk.roots"))
}

func TestConfigStore_Unset(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("store.backend", "sqlite"))

	require.NoError(t, store.Unset("store.backend"))
	require.NoError(t, store.Unset("store.backend"))

	_, ok := store.Value("store.backend")
	assert.False(t, ok)
	assert.NoError(t, store.Save())
	assert.Equal(t, ":memory:", store.Path())
}
