// Command wsimport imports build workspaces into a canonical module graph.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/wsimport/internal/adapters/driven/config/file"
	"github.com/custodia-labs/wsimport/internal/adapters/driven/filesystem"
	"github.com/custodia-labs/wsimport/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wsimport/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/wsimport/internal/adapters/driving/cli"
	"github.com/custodia-labs/wsimport/internal/adapters/driving/watcher"
	"github.com/custodia-labs/wsimport/internal/core/domain"
	"github.com/custodia-labs/wsimport/internal/core/ports/driven"
	"github.com/custodia-labs/wsimport/internal/core/services"
)

// Set by the linker.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(newServices)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// newServices wires adapters and services from the configuration in
// opts.ConfigDir.
func newServices(opts cli.Options) (*cli.Services, error) {
	// 1. Configuration
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if opts.PathPolicy != "" {
		policy, err := domain.ParsePathPolicy(opts.PathPolicy)
		if err != nil {
			return nil, err
		}
		settings.PathPolicy = policy
	}

	// 2. Driven adapters
	files := filesystem.NewProber()
	sdks := filesystem.NewSDKLocator(settings.JavaHome, settings.SDKRoots)

	store, err := newWorkspaceStore(settings, filepath.Dir(configStore.Path()))
	if err != nil {
		return nil, err
	}

	// 3. Core services
	orchestrator, err := services.NewImporterRegistry(files, sdks).NewOrchestrator(settings)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("configuring importers: %w", err)
	}
	workspaceService := services.NewWorkspaceService(store, sdks)
	importService := services.NewImportService(orchestrator, workspaceService, settings.Concurrency)

	// 4. Driving adapters
	folderWatcher := watcher.New(importService, watcher.WithReport(func(r *domain.FolderReport, err error) {
		if err == nil {
			cli.RenderReport(os.Stdout, r)
		}
	}))

	return &cli.Services{
		Import:       importService,
		Workspace:    workspaceService,
		Settings:     settingsService,
		Orchestrator: orchestrator,
		Watcher:      folderWatcher,
		Close:        store.Close,
	}, nil
}

// newWorkspaceStore opens the configured store backend. The SQLite store
// defaults to a data directory beside the config file.
func newWorkspaceStore(settings *domain.Settings, configDir string) (driven.WorkspaceStore, error) {
	switch settings.StoreBackend {
	case domain.StoreBackendSQLite:
		dataDir := settings.DataDir
		if dataDir == "" {
			dataDir = filepath.Join(configDir, "data")
		}
		store, err := sqlite.NewWorkspaceStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("opening workspace store: %w", err)
		}
		return store, nil
	default:
		return memory.NewWorkspaceStore(), nil
	}
}
