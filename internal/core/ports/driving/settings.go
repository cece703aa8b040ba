package driving

import "github.com/custodia-labs/wsimport/internal/core/domain"

// SettingsService manages engine settings.
type SettingsService interface {
	// Get returns the current settings with defaults applied.
	Get() (*domain.Settings, error)

	// Save persists settings.
	Save(settings *domain.Settings) error

	// Set parses and stores a single setting by config key.
	Set(key, value string) error

	// Reset removes a stored setting so its default applies again.
	Reset(key string) error

	// Keys lists the recognised config keys.
	Keys() []string
}
