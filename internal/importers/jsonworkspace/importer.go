// Package jsonworkspace imports folders that carry a canonical
// workspace.json document, as written by "wsimport export".
//
// URLs in the document may use the $ROOT$ macro; they are expanded to the
// import root and then canonicalised with the import's path policy.
package jsonworkspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/wsimport/internal/codec"
	"github.com/custodia-labs/wsimport/internal/core/domain"
	"github.com/custodia-labs/wsimport/internal/core/ports/driven"
	"github.com/custodia-labs/wsimport/internal/logger"
)

// Ensure Importer implements the interface.
var _ driven.Importer = (*Importer)(nil)

// FileName is the marker document read from the import root.
const FileName = "workspace.json"

// Importer reads a pre-built graph from workspace.json.
type Importer struct {
	files driven.FileProber
}

// New creates a workspace.json importer.
func New(files driven.FileProber) *Importer {
	return &Importer{files: files}
}

// Name returns the importer identifier.
func (i *Importer) Name() string {
	return domain.ImporterWorkspaceJSON
}

// IsApplicable reports whether root holds a workspace.json file.
func (i *Importer) IsApplicable(root string) bool {
	return i.files.Exists(filepath.Join(root, FileName))
}

// Import decodes the document. An empty document yields a nil graph so
// the next strategy is tried. The document lists no artifacts to probe,
// and has no submodules, so neither callback is called.
func (i *Importer) Import(
	ctx context.Context,
	root string,
	urls domain.URLResolver,
	_ driven.UnresolvedFunc,
	_ driven.WarningFunc,
) (*domain.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewImportError(
			"Cannot read workspace.json",
			fmt.Sprintf("reading %s: %v", path, err),
			err,
		)
	}

	g, err := codec.Decode(data)
	if err != nil {
		return nil, domain.NewImportError(
			"Invalid workspace.json",
			fmt.Sprintf("decoding %s: %v", path, err),
			err,
		)
	}
	if g.IsEmpty() {
		logger.Debug("%s: %s holds no modules", i.Name(), path)
		return nil, nil
	}

	codec.RewriteURLs(g, func(u string) string {
		return rebase(u, root, urls)
	})
	logger.Debug("%s: decoded %d modules, %d libraries", i.Name(), len(g.Modules), len(g.Libraries))
	return g, nil
}

// rebase expands the root macro and re-applies the path policy to file
// URLs. Other URLs pass through untouched.
func rebase(u, root string, urls domain.URLResolver) string {
	p, ok := strings.CutPrefix(u, "file://")
	if !ok || urls == nil {
		return u
	}
	if rest, ok := strings.CutPrefix(p, domain.RootMacro); ok {
		p = filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(rest, "/")))
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, filepath.FromSlash(p))
	}
	return urls.URL(p)
}
