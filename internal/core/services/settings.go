package services

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/custodia-labs/wsimport/internal/core/domain"
	"github.com/custodia-labs/wsimport/internal/core/ports/driven"
	"github.com/custodia-labs/wsimport/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyPathPolicy      = "paths.policy"
	keyLocalRepository = "maven.local_repository"
	keySDKRoots        = "sdk.roots"
	keyJavaHome        = "sdk.java_home"
	keyAPIVersion      = "compiler.api_version"
	keyLanguageVersion = "compiler.language_version"
	keyTargetVersion   = "compiler.target_version"
	keyImporterOrder   = "importers.order"
	keyStoreBackend    = "store.backend"
	keyDataDir         = "store.data_dir"
	keyConcurrency     = "import.concurrency"
)

var settingsKeys = []string{
	keyPathPolicy,
	keyLocalRepository,
	keySDKRoots,
	keyJavaHome,
	keyAPIVersion,
	keyLanguageVersion,
	keyTargetVersion,
	keyImporterOrder,
	keyStoreBackend,
	keyDataDir,
	keyConcurrency,
}

// SettingsService maps engine settings onto config store keys.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// LoadSettings reads settings from a config store, applying defaults for
// absent keys.
func LoadSettings(configStore driven.ConfigStore) (*domain.Settings, error) {
	return NewSettingsService(configStore).Get()
}

// Get retrieves current settings. Invalid values are reported rather
// than silently replaced.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	policy, err := domain.ParsePathPolicy(s.configStore.String(keyPathPolicy))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", keyPathPolicy, err)
	}

	backend := domain.StoreBackend(s.getString(keyStoreBackend, string(defaults.StoreBackend)))
	if !backend.IsValid() {
		return nil, fmt.Errorf("%s: %w: %q", keyStoreBackend, domain.ErrInvalidInput, backend)
	}

	settings := &domain.Settings{
		PathPolicy:           policy,
		MavenLocalRepository: s.configStore.String(keyLocalRepository),
		SDKRoots:             s.configStore.Strings(keySDKRoots),
		JavaHome:             s.configStore.String(keyJavaHome),
		Compiler: domain.CompilerDefaults{
			APIVersion:      s.getString(keyAPIVersion, defaults.Compiler.APIVersion),
			LanguageVersion: s.getString(keyLanguageVersion, defaults.Compiler.LanguageVersion),
			TargetVersion:   s.getString(keyTargetVersion, defaults.Compiler.TargetVersion),
		},
		ImporterOrder: defaults.ImporterOrder,
		StoreBackend:  backend,
		DataDir:       s.configStore.String(keyDataDir),
		Concurrency:   s.getInt(keyConcurrency, defaults.Concurrency),
	}
	if order := s.configStore.Strings(keyImporterOrder); len(order) > 0 {
		settings.ImporterOrder = order
	}

	return settings, nil
}

// Save persists settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyPathPolicy, string(settings.PathPolicy)},
		{keyLocalRepository, settings.MavenLocalRepository},
		{keySDKRoots, settings.SDKRoots},
		{keyJavaHome, settings.JavaHome},
		{keyAPIVersion, settings.Compiler.APIVersion},
		{keyLanguageVersion, settings.Compiler.LanguageVersion},
		{keyTargetVersion, settings.Compiler.TargetVersion},
		{keyImporterOrder, settings.ImporterOrder},
		{keyStoreBackend, string(settings.StoreBackend)},
		{keyDataDir, settings.DataDir},
		{keyConcurrency, settings.Concurrency},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value according to the key's type and stores it.
// List keys take comma-separated values.
func (s *SettingsService) Set(key, value string) error {
	var parsed any
	switch key {
	case keyPathPolicy:
		p, err := domain.ParsePathPolicy(value)
		if err != nil {
			return err
		}
		parsed = string(p)
	case keyStoreBackend:
		b := domain.StoreBackend(strings.ToLower(strings.TrimSpace(value)))
		if !b.IsValid() {
			return fmt.Errorf("%w: store backend %q", domain.ErrInvalidInput, value)
		}
		parsed = string(b)
	case keyConcurrency:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 1 {
			return fmt.Errorf("%w: concurrency %q", domain.ErrInvalidInput, value)
		}
		parsed = n
	case keySDKRoots, keyImporterOrder:
		parsed = splitList(value)
	case keyLocalRepository, keyJavaHome, keyAPIVersion, keyLanguageVersion, keyTargetVersion, keyDataDir:
		parsed = strings.TrimSpace(value)
	default:
		return fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Reset removes a stored key so its default applies again.
func (s *SettingsService) Reset(key string) error {
	if !slices.Contains(settingsKeys, key) {
		return fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}
	if err := s.configStore.Unset(key); err != nil {
		return fmt.Errorf("reset %s: %w", key, err)
	}
	return nil
}

// Keys lists the recognised config keys.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingsKeys...)
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.String(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if val, ok := s.configStore.Int(key); ok && val > 0 {
		return val
	}
	return defaultVal
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
