package driving

import "github.com/custodia-labs/feedcorpus/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, defaults applied.
	Get() (*domain.AppSettings, error)

	// Save validates and persists application settings.
	Save(settings *domain.AppSettings) error

	// Validate checks settings against their constraints.
	Validate(settings *domain.AppSettings) error

	// AddFeed subscribes to a feed URL.
	AddFeed(url string) error

	// RemoveFeed unsubscribes from a feed URL.
	RemoveFeed(url string) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
