package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/feedcorpus/internal/adapters/driven/config/file"
	"github.com/custodia-labs/feedcorpus/internal/adapters/driven/feed"
	"github.com/custodia-labs/feedcorpus/internal/adapters/driven/pictures"
	"github.com/custodia-labs/feedcorpus/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/feedcorpus/internal/adapters/driving/cli"
	"github.com/custodia-labs/feedcorpus/internal/core/domain"
	"github.com/custodia-labs/feedcorpus/internal/core/ports/driven"
	"github.com/custodia-labs/feedcorpus/internal/core/services"
	"github.com/custodia-labs/feedcorpus/internal/logger"
	"github.com/custodia-labs/feedcorpus/internal/metrics"
	"github.com/custodia-labs/feedcorpus/internal/normalisers/html"
)

// wire builds the services from the settings stored in configDir.
func wire(ctx context.Context, configDir string) (cli.Services, error) {
	logger.Section("Startup")

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return cli.Services{}, fmt.Errorf("opening config: %w", err)
	}
	logger.Debug("config: %s", configStore.Path())

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return cli.Services{}, fmt.Errorf("reading settings: %w", err)
	}
	if err := settingsService.Validate(settings); err != nil {
		return cli.Services{}, fmt.Errorf("%s: %w", configStore.Path(), err)
	}

	var store driven.ArticleStore
	if settings.Corpus.UseStore {
		sqliteStore, err := sqlite.NewStore(settings.Corpus.DataDir)
		if err != nil {
			return cli.Services{}, fmt.Errorf("opening article store: %w", err)
		}
		logger.Debug("article store: %s", sqliteStore.Path())
		store = sqliteStore
	}

	corpus := services.NewCorpus(store)
	if store != nil {
		n, err := corpus.Load(ctx)
		if err != nil && !errors.Is(err, domain.ErrStoreUnavailable) {
			_ = corpus.Close()
			return cli.Services{}, fmt.Errorf("loading articles: %w", err)
		}
		logger.Info("loaded %d articles", n)
	}
	corpus.AddStopWords(settings.Corpus.StopWords...)

	m := metrics.New()

	var pictureFetcher driven.PictureFetcher
	if settings.Pictures.Enabled {
		downloader := pictures.NewDownloader(pictures.Config{
			Dir:     settings.Pictures.Dir,
			Rate:    settings.Pictures.Rate,
			Workers: settings.Ingest.Workers,
			Metrics: m,
		})
		logger.Debug("pictures: %s", downloader.Dir())
		pictureFetcher = downloader
	}

	source := feed.NewSource(feed.Config{
		Timeout: settings.Ingest.Timeout,
		Metrics: m,
	})
	ingestor := services.NewIngestor(
		corpus,
		source,
		feed.NewOPMLReader(),
		html.New(),
		pictureFetcher,
		settings.Ingest.Workers,
	)

	return cli.Services{
		Corpus:   corpus,
		Ingest:   ingestor,
		Settings: settingsService,
		Metrics:  m.Handler(),
		Watch: func(ctx context.Context, dir string, onFile func(string)) error {
			return feed.NewWatcher(dir, 0).Watch(ctx, onFile)
		},
		Close: corpus.Close,
	}, nil
}
