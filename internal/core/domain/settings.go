package domain

import "time"

// Default settings values.
const (
	DefaultIngestWorkers = 4
	DefaultPictureRate   = 2.0
	DefaultHotSamples    = 10
	DefaultHotK          = 10
	DefaultFetchTimeout  = 30 * time.Second
)

// AppSettings holds all application settings.
// Nested struct tags are checked by the settings service before use.
type AppSettings struct {
	Corpus   CorpusSettings
	Ingest   IngestSettings
	Pictures PictureSettings
	Hot      HotTermSettings
}

// CorpusSettings configures the corpus and its article store.
type CorpusSettings struct {
	// UseStore mirrors every added article into the article store.
	UseStore bool

	// DataDir is the directory holding the article database.
	// Empty selects the platform data directory.
	DataDir string

	// StopWords are always excluded from weighting.
	StopWords []string `validate:"dive,required"`
}

// IngestSettings configures feed ingestion.
type IngestSettings struct {
	// Feeds are the subscribed feed URLs.
	Feeds []string `validate:"dive,url"`

	// Workers bounds the number of feeds fetched at once.
	Workers int `validate:"min=1,max=64"`

	// Timeout bounds a single feed fetch.
	Timeout time.Duration `validate:"min=0"`
}

// PictureSettings configures picture downloading.
type PictureSettings struct {
	// Enabled turns on picture collection during ingestion.
	Enabled bool

	// Dir is the download cache directory. Empty selects the platform
	// cache directory.
	Dir string

	// Rate is the number of downloads started per second.
	Rate float64 `validate:"gt=0"`
}

// HotTermSettings configures the hot term matrix defaults.
type HotTermSettings struct {
	Samples int `validate:"min=1,max=1000"`
	K       int `validate:"min=1"`
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Corpus: CorpusSettings{
			UseStore: true,
		},
		Ingest: IngestSettings{
			Workers: DefaultIngestWorkers,
			Timeout: DefaultFetchTimeout,
		},
		Pictures: PictureSettings{
			Rate: DefaultPictureRate,
		},
		Hot: HotTermSettings{
			Samples: DefaultHotSamples,
			K:       DefaultHotK,
		},
	}
}
