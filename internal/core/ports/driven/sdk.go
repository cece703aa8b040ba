package driven

import "github.com/custodia-labs/wsimport/internal/core/domain"

// SDKLocator discovers installed SDKs from the environment.
type SDKLocator interface {
	// Find returns an installed SDK matching the version hint.
	Find(version string) (*domain.SDK, bool)

	// Default returns the SDK used to resolve inherited SDK edges.
	// Returns domain.ErrNotFound when no SDK is installed.
	Default() (*domain.SDK, error)
}
