package services

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/wsimport/internal/core/domain"
	"github.com/custodia-labs/wsimport/internal/core/ports/driven"
	"github.com/custodia-labs/wsimport/internal/importers/jsonworkspace"
	"github.com/custodia-labs/wsimport/internal/importers/maven"
)

// ImporterFactory creates an import strategy from settings.
type ImporterFactory func(settings *domain.Settings) driven.Importer

// ImporterRegistry knows the available import strategies and assembles
// them in the configured priority order.
type ImporterRegistry struct {
	factories map[string]ImporterFactory
	files     driven.FileProber
	sdks      driven.SDKLocator
}

// NewImporterRegistry creates a registry with the built-in strategies.
func NewImporterRegistry(files driven.FileProber, sdks driven.SDKLocator) *ImporterRegistry {
	r := &ImporterRegistry{
		factories: make(map[string]ImporterFactory),
		files:     files,
		sdks:      sdks,
	}
	r.registerBuiltinImporters()
	return r
}

func (r *ImporterRegistry) registerBuiltinImporters() {
	r.Register(domain.ImporterWorkspaceJSON, func(*domain.Settings) driven.Importer {
		return jsonworkspace.New(r.files)
	})
	r.Register(domain.ImporterMaven, func(settings *domain.Settings) driven.Importer {
		reader := maven.NewReader(r.files, settings.MavenLocalRepository)
		return NewDescriptorImporter(reader, r.files, r.sdks, BuilderOptions{
			LibraryPrefix: "Maven",
			Compiler:      settings.Compiler,
		})
	})
}

// Register adds or replaces a strategy factory.
func (r *ImporterRegistry) Register(name string, factory ImporterFactory) {
	r.factories[name] = factory
}

// Names returns the registered strategy names, sorted.
func (r *ImporterRegistry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build creates the strategies named by settings.ImporterOrder, in that
// order. Unknown or repeated names are an error.
func (r *ImporterRegistry) Build(settings *domain.Settings) ([]driven.Importer, error) {
	seen := make(map[string]bool, len(settings.ImporterOrder))
	importers := make([]driven.Importer, 0, len(settings.ImporterOrder))
	for _, name := range settings.ImporterOrder {
		factory, ok := r.factories[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown importer %q", domain.ErrInvalidInput, name)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: importer %q listed twice", domain.ErrDuplicateEntity, name)
		}
		seen[name] = true
		importers = append(importers, factory(settings))
	}
	return importers, nil
}

// NewOrchestrator builds the configured strategies into an orchestrator.
func (r *ImporterRegistry) NewOrchestrator(settings *domain.Settings) (*ImportOrchestrator, error) {
	importers, err := r.Build(settings)
	if err != nil {
		return nil, err
	}
	return NewImportOrchestrator(settings.PathPolicy, importers...), nil
}
