package services

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
	"github.com/custodia-labs/feedcorpus/internal/core/ports/driven"
	"github.com/custodia-labs/feedcorpus/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyCorpusUseStore  = "corpus.use_store"
	keyCorpusDataDir   = "corpus.data_dir"
	keyCorpusStopWords = "corpus.stop_words"
	keyIngestFeeds     = "ingest.feeds"
	keyIngestWorkers   = "ingest.workers"
	keyIngestTimeout   = "ingest.timeout"
	keyPicturesEnabled = "pictures.enabled"
	keyPicturesDir     = "pictures.dir"
	keyPicturesRate    = "pictures.rate"
	keyHotSamples      = "hot.samples"
	keyHotK            = "hot.k"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	validate    *validator.Validate
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Get retrieves current application settings. Missing or malformed
// values fall back to their defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Corpus: domain.CorpusSettings{
			UseStore:  s.getBool(keyCorpusUseStore, defaults.Corpus.UseStore),
			DataDir:   s.configStore.GetString(keyCorpusDataDir),
			StopWords: s.configStore.GetStringSlice(keyCorpusStopWords),
		},
		Ingest: domain.IngestSettings{
			Feeds:   s.configStore.GetStringSlice(keyIngestFeeds),
			Workers: s.getInt(keyIngestWorkers, defaults.Ingest.Workers),
			Timeout: s.getDuration(keyIngestTimeout, defaults.Ingest.Timeout),
		},
		Pictures: domain.PictureSettings{
			Enabled: s.getBool(keyPicturesEnabled, defaults.Pictures.Enabled),
			Dir:     s.configStore.GetString(keyPicturesDir),
			Rate:    s.getFloat(keyPicturesRate, defaults.Pictures.Rate),
		},
		Hot: domain.HotTermSettings{
			Samples: s.getInt(keyHotSamples, defaults.Hot.Samples),
			K:       s.getInt(keyHotK, defaults.Hot.K),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.Validate(settings); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyCorpusUseStore, settings.Corpus.UseStore},
		{keyCorpusDataDir, settings.Corpus.DataDir},
		{keyCorpusStopWords, nonNil(settings.Corpus.StopWords)},
		{keyIngestFeeds, nonNil(settings.Ingest.Feeds)},
		{keyIngestWorkers, settings.Ingest.Workers},
		{keyIngestTimeout, settings.Ingest.Timeout.String()},
		{keyPicturesEnabled, settings.Pictures.Enabled},
		{keyPicturesDir, settings.Pictures.Dir},
		{keyPicturesRate, settings.Pictures.Rate},
		{keyHotSamples, settings.Hot.Samples},
		{keyHotK, settings.Hot.K},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Validate checks settings against their field constraints.
func (s *SettingsService) Validate(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: nil settings", domain.ErrInvalidInput)
	}
	if err := s.validate.Struct(settings); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			errs := make([]error, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				errs = append(errs, fmt.Errorf("%s fails %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
		}
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return nil
}

// AddFeed subscribes to a feed URL.
func (s *SettingsService) AddFeed(url string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if slices.Contains(settings.Ingest.Feeds, url) {
		return fmt.Errorf("feed %s: %w", url, domain.ErrAlreadyExists)
	}
	settings.Ingest.Feeds = append(settings.Ingest.Feeds, url)
	return s.Save(settings)
}

// RemoveFeed unsubscribes from a feed URL.
func (s *SettingsService) RemoveFeed(url string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	i := slices.Index(settings.Ingest.Feeds, url)
	if i < 0 {
		return fmt.Errorf("feed %s: %w", url, domain.ErrNotFound)
	}
	settings.Ingest.Feeds = slices.Delete(settings.Ingest.Feeds, i, i+1)
	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

// nonNil keeps empty lists as empty arrays in the config file.
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
