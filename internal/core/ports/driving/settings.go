package driving

import "github.com/custodia-labs/tgcore/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates one setting by key, parsing value for the key's type.
	Set(key, value string) error

	// SetPolicy updates the unsupported variant policy.
	SetPolicy(policy domain.UnsupportedPolicy) error

	// Validate checks that the current settings are usable.
	Validate() error

	// Keys returns the settable keys.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
