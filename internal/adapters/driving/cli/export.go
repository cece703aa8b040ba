package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wsimport/internal/codec"
)

var (
	exportCrop   bool
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <folder>",
	Short: "Export a folder's graph as canonical JSON",
	Long: `Writes the graph the folder contributed to the workspace as canonical JSON.

With --crop every file URL is reduced to its last path segment, which makes
the output independent of where the workspace lives on disk.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&exportCrop, "crop", false, "Reduce file URLs to their file name")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := requireWorkspaceService(); err != nil {
		return err
	}

	folder, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve folder: %w", err)
	}

	graph, err := workspaceService.Graph(cmd.Context(), folder)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if exportCrop {
		codec.RewriteURLs(graph, codec.CropURL)
	}

	data, err := codec.Encode(graph)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if exportOutput == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(exportOutput, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", exportOutput, err)
	}
	cmd.Printf("Exported %s to %s\n", folder, exportOutput)
	return nil
}
