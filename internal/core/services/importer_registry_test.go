package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wsimport/internal/core/domain"
	"github.com/custodia-labs/wsimport/internal/core/ports/driven"
)

func TestImporterRegistry_Builtins(t *testing.T) {
	r := NewImporterRegistry(newMockFiles(), nil)

	assert.Equal(t, []string{domain.ImporterMaven, domain.ImporterWorkspaceJSON}, r.Names())

	settings := domain.DefaultSettings()
	importers, err := r.Build(&settings)
	require.NoError(t, err)

	require.Len(t, importers, 2)
	assert.Equal(t, domain.ImporterWorkspaceJSON, importers[0].Name())
	assert.Equal(t, domain.ImporterMaven, importers[1].Name())
}

func TestImporterRegistry_Order(t *testing.T) {
	r := NewImporterRegistry(newMockFiles(), nil)
	settings := domain.DefaultSettings()
	settings.ImporterOrder = []string{domain.ImporterMaven}

	o, err := r.NewOrchestrator(&settings)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.ImporterMaven}, o.Strategies())
}

func TestImporterRegistry_BuildErrors(t *testing.T) {
	r := NewImporterRegistry(newMockFiles(), nil)

	t.Run("unknown", func(t *testing.T) {
		settings := domain.DefaultSettings()
		settings.ImporterOrder = []string{"gradle"}
		_, err := r.Build(&settings)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("repeated", func(t *testing.T) {
		settings := domain.DefaultSettings()
		settings.ImporterOrder = []string{domain.ImporterMaven, domain.ImporterMaven}
		_, err := r.Build(&settings)
		assert.ErrorIs(t, err, domain.ErrDuplicateEntity)
	})
}

func TestImporterRegistry_Register(t *testing.T) {
	r := NewImporterRegistry(newMockFiles(), nil)
	custom := &mockImporter{name: "custom", applicable: true, graph: singleModuleGraph("x")}
	r.Register("custom", func(*domain.Settings) driven.Importer { return custom })

	settings := domain.DefaultSettings()
	settings.ImporterOrder = []string{"custom", domain.ImporterMaven}

	o, err := r.NewOrchestrator(&settings)
	require.NoError(t, err)

	result, err := o.Import(context.Background(), "/ws", nil)
	require.NoError(t, err)
	assert.Equal(t, "custom", result.Strategy)
}
