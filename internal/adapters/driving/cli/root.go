package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wsimport/internal/core/ports/driving"
	"github.com/custodia-labs/wsimport/internal/logger"
)

var version = "dev"

// Global flags.
var (
	verbose    bool
	configDir  string
	pathPolicy string
)

// Core services used by the commands.
var (
	importService    driving.ImportService
	workspaceService driving.WorkspaceService
	settingsService  driving.SettingsService
	orchestrator     driving.ImportOrchestrator
	folderWatcher    driving.FolderWatcher

	bootstrap     Bootstrap
	bootstrapped  bool
	closeServices func() error
)

// Services bundles the core services the commands drive.
type Services struct {
	Import       driving.ImportService
	Workspace    driving.WorkspaceService
	Settings     driving.SettingsService
	Orchestrator driving.ImportOrchestrator
	Watcher      driving.FolderWatcher

	// Close releases the services' resources. May be nil.
	Close func() error
}

// Options carries the global flags into a Bootstrap.
type Options struct {
	// ConfigDir overrides the default config directory.
	ConfigDir string

	// PathPolicy overrides the configured path policy when non-empty.
	PathPolicy string
}

// Bootstrap builds the services once the global flags are parsed.
type Bootstrap func(opts Options) (*Services, error)

var rootCmd = &cobra.Command{
	Use:   "wsimport",
	Short: "Import build workspaces into a canonical module graph",
	Long: `wsimport reads Maven projects and workspace.json documents and builds a
canonical graph of modules, libraries and SDKs.

Each imported folder contributes its graph to a shared workspace. Folders are
tried against the configured importers in priority order; the first one that
produces a graph wins.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default ~/.wsimport)")
	rootCmd.PersistentFlags().StringVar(&pathPolicy, "policy", "",
		"Path policy: absolute, root-relative or file-name (overrides config)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetBootstrap registers the function that builds services on first use.
func SetBootstrap(fn Bootstrap) {
	bootstrap = fn
	bootstrapped = false
}

// SetServices installs services directly.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	importService = s.Import
	workspaceService = s.Workspace
	settingsService = s.Settings
	orchestrator = s.Orchestrator
	folderWatcher = s.Watcher
	closeServices = s.Close
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command
// context, which stops imports and watches cleanly.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)

	if closeServices != nil {
		if cerr := closeServices(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// ensureServices runs the bootstrap once, if one is registered.
func ensureServices() error {
	if bootstrap == nil || bootstrapped {
		return nil
	}
	s, err := bootstrap(Options{ConfigDir: configDir, PathPolicy: pathPolicy})
	if err != nil {
		return err
	}
	bootstrapped = true
	SetServices(s)
	return nil
}

func requireImportService() error {
	if err := ensureServices(); err != nil {
		return err
	}
	if importService == nil {
		return errors.New("import service not configured")
	}
	return nil
}

func requireWorkspaceService() error {
	if err := ensureServices(); err != nil {
		return err
	}
	if workspaceService == nil {
		return errors.New("workspace service not configured")
	}
	return nil
}

func requireSettingsService() error {
	if err := ensureServices(); err != nil {
		return err
	}
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return nil
}
