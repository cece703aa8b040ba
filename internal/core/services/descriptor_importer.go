package services

import (
	"context"

	"github.com/custodia-labs/wsimport/internal/core/domain"
	"github.com/custodia-labs/wsimport/internal/core/ports/driven"
	"github.com/custodia-labs/wsimport/internal/logger"
)

// Ensure DescriptorImporter implements the interface.
var _ driven.Importer = (*DescriptorImporter)(nil)

// DescriptorImporter turns a DescriptorReader into an import strategy by
// feeding its descriptors through a GraphBuilder.
type DescriptorImporter struct {
	reader driven.DescriptorReader
	files  driven.FileProber
	sdks   driven.SDKLocator
	opts   BuilderOptions
}

// NewDescriptorImporter creates an import strategy backed by reader.
func NewDescriptorImporter(
	reader driven.DescriptorReader,
	files driven.FileProber,
	sdks driven.SDKLocator,
	opts BuilderOptions,
) *DescriptorImporter {
	return &DescriptorImporter{
		reader: reader,
		files:  files,
		sdks:   sdks,
		opts:   opts,
	}
}

// Name returns the reader's build system name.
func (i *DescriptorImporter) Name() string {
	return i.reader.Name()
}

// IsApplicable delegates to the reader's marker check.
func (i *DescriptorImporter) IsApplicable(root string) bool {
	return i.reader.IsApplicable(root)
}

// Import reads the module tree and builds its graph with a fresh dedup
// context. Submodule failures are skipped and reported through onWarning.
func (i *DescriptorImporter) Import(
	ctx context.Context,
	root string,
	urls domain.URLResolver,
	onUnresolved driven.UnresolvedFunc,
	onWarning driven.WarningFunc,
) (*domain.Graph, error) {
	result, err := i.reader.ReadModules(ctx, root)
	if err != nil {
		return nil, err
	}

	for _, failure := range result.Failures {
		logger.Warn("%s: %s", i.reader.Name(), failure)
		if onWarning != nil {
			onWarning(failure.String())
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Debug("%s: building graph for %d modules", i.reader.Name(), len(result.Modules))
	builder := NewGraphBuilder(i.files, i.sdks, urls, onUnresolved, i.opts)
	return builder.Build(result.Modules, NewDedupContext())
}
