package driving

import "github.com/custodia-labs/querytrans/internal/core/domain"

// SettingsService reads and writes application settings.
type SettingsService interface {
	// Get returns the current settings with defaults applied.
	Get() (*domain.Settings, error)

	// SetTransform validates and persists transform settings.
	SetTransform(settings domain.TransformSettings) error

	// SetValue parses value for a known key, validates and persists it.
	// Unknown keys are rejected with domain.ErrInvalidInput.
	SetValue(key, value string) error

	// GetValue returns the effective value of a known key, formatted the
	// way SetValue accepts it.
	GetValue(key string) (string, error)

	// Keys returns every known setting key in a stable order.
	Keys() []string

	// Path returns the location of the configuration file.
	Path() string
}
