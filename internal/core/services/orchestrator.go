package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/wsimport/internal/core/domain"
	"github.com/custodia-labs/wsimport/internal/core/ports/driven"
	"github.com/custodia-labs/wsimport/internal/core/ports/driving"
	"github.com/custodia-labs/wsimport/internal/logger"
)

// Ensure ImportOrchestrator implements the interface.
var _ driving.ImportOrchestrator = (*ImportOrchestrator)(nil)

// attemptOutcome classifies one strategy run.
type attemptOutcome int

const (
	outcomeApplicable attemptOutcome = iota
	outcomeNotApplicable
	outcomeFailed
)

// attempt is the result of running one strategy.
type attempt struct {
	outcome    attemptOutcome
	graph      *domain.Graph
	unresolved []string
	warnings   []string
	err        error
}

// ImportOrchestrator tries import strategies in a fixed priority order.
// Strategies run sequentially; the first one yielding a graph wins.
type ImportOrchestrator struct {
	strategies []driven.Importer
	policy     domain.PathPolicy
}

// NewImportOrchestrator creates an orchestrator over strategies, highest
// priority first. policy controls URL canonicalisation for every strategy.
func NewImportOrchestrator(policy domain.PathPolicy, strategies ...driven.Importer) *ImportOrchestrator {
	if !policy.IsValid() {
		policy = domain.PathAbsolute
	}
	return &ImportOrchestrator{
		strategies: strategies,
		policy:     policy,
	}
}

// Strategies returns the strategy names in priority order.
func (o *ImportOrchestrator) Strategies() []string {
	names := make([]string, 0, len(o.strategies))
	for _, s := range o.strategies {
		names = append(names, s.Name())
	}
	return names
}

// Import runs the strategy list on root.
// Only the winning strategy's unresolved dependencies reach onUnresolved.
// Failed strategies become warnings; cancellation returns immediately.
func (o *ImportOrchestrator) Import(
	ctx context.Context,
	root string,
	onUnresolved func(coordinate string),
) (*domain.ImportResult, error) {
	result := &domain.ImportResult{}
	log := logger.ForFolder(root)

	for _, strategy := range o.strategies {
		if err := ctx.Err(); err != nil {
			return nil, cancelled(err)
		}

		if !strategy.IsApplicable(root) {
			log.Debug("%s: not applicable", strategy.Name())
			continue
		}

		log.Debug("%s: importing", strategy.Name())
		a := o.try(ctx, strategy, root)

		switch a.outcome {
		case outcomeApplicable:
			result.Graph = a.graph
			result.Strategy = strategy.Name()
			result.Unresolved = a.unresolved
			for _, w := range a.warnings {
				result.Warnings = append(result.Warnings, strategy.Name()+": "+w)
			}
			if onUnresolved != nil {
				for _, coordinate := range a.unresolved {
					onUnresolved(coordinate)
				}
			}
			log.Info("%s: imported %d modules, %d libraries",
				strategy.Name(), len(a.graph.Modules), len(a.graph.Libraries))
			return result, nil

		case outcomeNotApplicable:
			log.Debug("%s: produced no graph", strategy.Name())

		case outcomeFailed:
			if isCancellation(a.err) {
				return nil, cancelled(a.err)
			}
			result.Warnings = append(result.Warnings, strategyWarning(log, strategy.Name(), a.err))
		}
	}

	log.Info("no importer produced a graph")
	return result, nil
}

// try runs one strategy, buffering its diagnostics so that a failed
// attempt leaves no trace in the caller's sink or the result warnings.
func (o *ImportOrchestrator) try(ctx context.Context, strategy driven.Importer, root string) (a attempt) {
	defer func() {
		if r := recover(); r != nil {
			a = attempt{outcome: outcomeFailed, err: fmt.Errorf("importer panicked: %v", r)}
		}
	}()

	var unresolved, warnings []string
	graph, err := strategy.Import(ctx, root, o.policy.Resolver(root),
		func(coordinate string) { unresolved = append(unresolved, coordinate) },
		func(message string) { warnings = append(warnings, message) },
	)
	if errors.Is(err, domain.ErrNotApplicable) {
		return attempt{outcome: outcomeNotApplicable}
	}
	if err != nil {
		return attempt{outcome: outcomeFailed, err: err}
	}
	if graph.IsEmpty() {
		return attempt{outcome: outcomeNotApplicable}
	}
	if err := graph.Validate(); err != nil {
		return attempt{outcome: outcomeFailed, err: fmt.Errorf("%w: %w", domain.ErrInvariantViolation, err)}
	}
	return attempt{outcome: outcomeApplicable, graph: graph, unresolved: unresolved, warnings: warnings}
}

// strategyWarning logs a strategy failure and returns its warning line.
func strategyWarning(log logger.Folder, name string, err error) string {
	if ie, ok := domain.AsImportError(err); ok {
		log.Warn("%s: %s", name, ie.LogMessage)
		return fmt.Sprintf("%s: %s", name, ie.UserMessage)
	}
	log.Warn("%s: import failed: %v", name, err)
	return fmt.Sprintf("%s: %v", name, err)
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, domain.ErrImportCancelled)
}

func cancelled(err error) error {
	if errors.Is(err, domain.ErrImportCancelled) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrImportCancelled, err)
}
