package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wsimport/internal/core/domain"
)

var showCmd = &cobra.Command{
	Use:   "show [folder]",
	Short: "Show the workspace or one folder's modules",
	Long: `Without arguments, lists the folders contributing to the workspace and the
default SDK. With a folder, lists its modules and their dependencies.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

var removeCmd = &cobra.Command{
	Use:   "remove <folder>",
	Short: "Remove a folder's contribution from the workspace",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List importers in priority order",
	RunE:  runStrategies,
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(strategiesCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if err := requireWorkspaceService(); err != nil {
		return err
	}
	if len(args) == 1 {
		return showFolder(cmd, args[0])
	}

	ctx := cmd.Context()

	folders, err := workspaceService.Folders(ctx)
	if err != nil {
		return fmt.Errorf("failed to list folders: %w", err)
	}

	cmd.Println(styles.Title.Render("Workspace"))
	if len(folders) == 0 {
		cmd.Println(styles.Muted.Render("  No folders imported."))
	}
	for _, folder := range folders {
		g, err := workspaceService.Graph(ctx, folder)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", folder, err)
		}
		cmd.Printf("  %s  %s\n", folder,
			styles.Muted.Render(pluralise(len(g.Modules), "module")+", "+pluralise(len(g.Libraries), "library")))
	}

	sdk, err := workspaceService.DefaultSDK(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		cmd.Println("Default SDK: " + styles.Muted.Render("(none)"))
	case err != nil:
		return fmt.Errorf("failed to read default SDK: %w", err)
	default:
		cmd.Printf("Default SDK: %s (%s)\n", sdk.Name, sdk.HomePath)
	}
	return nil
}

func showFolder(cmd *cobra.Command, arg string) error {
	folder, err := filepath.Abs(arg)
	if err != nil {
		return fmt.Errorf("resolve folder: %w", err)
	}

	g, err := workspaceService.Graph(cmd.Context(), folder)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", folder, err)
	}

	cmd.Println(styles.Title.Render(folder))
	if len(g.Modules) == 0 {
		cmd.Println(styles.Muted.Render("  No modules."))
		return nil
	}

	for _, m := range g.Modules {
		cmd.Printf("  %s %s\n", m.Name, styles.Muted.Render("["+string(m.Kind)+"]"))
		if m.ContentRoot.URL != "" {
			cmd.Printf("    root: %s\n", m.ContentRoot.URL)
		}
		if m.Facet != nil {
			cmd.Printf("    facet: %s target %s\n", m.Facet.Platform, m.Facet.TargetVersion)
		}
		for _, d := range m.Dependencies {
			cmd.Printf("    %s\n", describeDependency(d))
		}
	}
	return nil
}

// describeDependency renders one edge for display.
func describeDependency(d domain.Dependency) string {
	switch d.Kind {
	case domain.DependencyLibrary:
		return fmt.Sprintf("library %s (%s)", d.Library.Coordinate, d.Scope)
	case domain.DependencyModule:
		return fmt.Sprintf("module %s (%s)", d.Module, d.Scope)
	case domain.DependencySDK:
		return "sdk " + d.SDK
	case domain.DependencyInheritedSDK:
		return "sdk (inherited)"
	case domain.DependencyModuleSource:
		return "module sources"
	default:
		return string(d.Kind)
	}
}

func runRemove(cmd *cobra.Command, args []string) error {
	if err := requireWorkspaceService(); err != nil {
		return err
	}

	folder, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve folder: %w", err)
	}

	if err := workspaceService.Remove(cmd.Context(), folder); err != nil {
		return fmt.Errorf("remove failed: %w", err)
	}
	cmd.Printf("Removed %s\n", folder)
	return nil
}

func runStrategies(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if orchestrator == nil {
		return errors.New("import orchestrator not configured")
	}

	for i, name := range orchestrator.Strategies() {
		cmd.Printf("%d. %s\n", i+1, name)
	}
	return nil
}
