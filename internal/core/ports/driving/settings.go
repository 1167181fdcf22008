package driving

import "github.com/custodia-labs/productsearch/internal/core/domain"

// SettingsService manages client settings.
type SettingsService interface {
	// Get resolves settings from storage with defaults applied.
	Get() (domain.Settings, error)

	// Save persists settings.
	Save(settings domain.Settings) error
}
