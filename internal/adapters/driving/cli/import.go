package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wsimport/internal/core/domain"
)

var importWatch bool

var importCmd = &cobra.Command{
	Use:   "import [folder...]",
	Short: "Import folders into the workspace",
	Long: `Imports each folder with the first applicable importer and merges the
result into the workspace, replacing the folder's previous contribution.
A folder no importer applies to is merged as an empty workspace.

Without arguments the current directory is imported. With --watch the
folders are re-imported whenever a build descriptor below them changes.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVarP(&importWatch, "watch", "w", false, "Re-import on descriptor changes")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if err := requireImportService(); err != nil {
		return err
	}

	folders := args
	if len(folders) == 0 {
		folders = []string{"."}
	}

	ctx := cmd.Context()

	reports, err := importService.ImportFolders(ctx, folders)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	for i := range reports {
		RenderReport(cmd.OutOrStdout(), &reports[i])
	}

	if !importWatch {
		return nil
	}
	if folderWatcher == nil {
		return errors.New("watcher not configured")
	}

	cmd.Println(styles.Muted.Render("Watching for descriptor changes. Press Ctrl+C to stop."))
	return folderWatcher.Watch(ctx, folders)
}

// RenderReport writes a styled summary of one folder import.
func RenderReport(w io.Writer, r *domain.FolderReport) {
	if r == nil {
		return
	}

	var b strings.Builder

	switch {
	case r.FellBack:
		b.WriteString(styles.Warning.Render("~ " + r.Folder))
		b.WriteString("  " + styles.Muted.Render("no importer applied, empty workspace"))
	default:
		b.WriteString(styles.Success.Render("✓ " + r.Folder))
		fmt.Fprintf(&b, "  %s  %s",
			styles.Title.Render(r.Strategy),
			pluralise(r.Modules, "module")+", "+pluralise(r.Libraries, "library"))
	}
	if r.Duration > 0 {
		b.WriteString("  " + styles.Muted.Render("("+r.Duration.Round(time.Millisecond).String()+")"))
	}
	b.WriteString("\n")

	for _, warning := range r.Warnings {
		b.WriteString("  " + styles.Warning.Render("! "+warning) + "\n")
	}
	for _, coordinate := range r.Unresolved {
		b.WriteString("  " + styles.Error.Render("? unresolved "+coordinate) + "\n")
	}

	fmt.Fprint(w, b.String())
}

func pluralise(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	if strings.HasSuffix(noun, "y") {
		return fmt.Sprintf("%d %sies", n, strings.TrimSuffix(noun, "y"))
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
