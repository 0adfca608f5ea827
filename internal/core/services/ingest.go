package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
	"github.com/custodia-labs/feedcorpus/internal/core/ports/driven"
	"github.com/custodia-labs/feedcorpus/internal/core/ports/driving"
	"github.com/custodia-labs/feedcorpus/internal/logger"
)

// Ensure Ingestor implements the interface.
var _ driving.IngestService = (*Ingestor)(nil)

// Ingestor fetches feeds and adds their items to a corpus.
type Ingestor struct {
	corpus        driving.CorpusService
	feeds         driven.FeedSource
	subscriptions driven.SubscriptionReader
	normaliser    driven.Normaliser
	pictures      driven.PictureFetcher
	workers       int
}

// NewIngestor creates a new ingestor.
// The normaliser and pictures are optional. workers bounds the number of
// feeds fetched at once; values below one select the default.
func NewIngestor(
	corpus driving.CorpusService,
	feeds driven.FeedSource,
	subscriptions driven.SubscriptionReader,
	normaliser driven.Normaliser,
	pictures driven.PictureFetcher,
	workers int,
) *Ingestor {
	if workers < 1 {
		workers = domain.DefaultIngestWorkers
	}
	return &Ingestor{
		corpus:        corpus,
		feeds:         feeds,
		subscriptions: subscriptions,
		normaliser:    normaliser,
		pictures:      pictures,
		workers:       workers,
	}
}

// IngestRecords adds raw records to the corpus.
func (i *Ingestor) IngestRecords(ctx context.Context, records []domain.ArticleFields) domain.IngestReport {
	return i.corpus.IngestFromSource(ctx, records)
}

// IngestFeeds fetches the feeds concurrently and adds their items in the
// order the URLs were given, so the corpus order does not depend on
// network timing.
func (i *Ingestor) IngestFeeds(ctx context.Context, urls []string) (domain.IngestReport, error) {
	var report domain.IngestReport
	if i.feeds == nil {
		return report, fmt.Errorf("ingest feeds: %w: no feed source configured", domain.ErrFeedUnavailable)
	}

	feeds := make([]*domain.Feed, len(urls))
	fetchErrs := make([]error, len(urls))

	var g errgroup.Group
	g.SetLimit(i.workers)
	for n, url := range urls {
		g.Go(func() error {
			feed, err := i.feeds.Fetch(ctx, url)
			if err != nil {
				fetchErrs[n] = fmt.Errorf("feed %s: %w", url, err)
				return nil
			}
			feeds[n] = feed
			return nil
		})
	}
	_ = g.Wait()

	var (
		errs    []error
		fetched int
	)
	for n, feed := range feeds {
		if fetchErrs[n] != nil {
			logger.Warn("%v", fetchErrs[n])
			errs = append(errs, fetchErrs[n])
			continue
		}
		fetched++
		report.Merge(i.ingestFeed(ctx, feed))
	}

	if err := i.fetchPictures(ctx); err != nil {
		errs = append(errs, err)
	}

	logger.Info("Ingested %d feeds: %d added, %d duplicates, %d failed records",
		fetched, report.Added, report.Duplicates, len(report.Failures))
	return report, errors.Join(errs...)
}

// IngestSubscriptions reads an OPML file and ingests every listed feed.
func (i *Ingestor) IngestSubscriptions(ctx context.Context, path string) (domain.IngestReport, error) {
	if i.subscriptions == nil {
		return domain.IngestReport{}, fmt.Errorf("ingest subscriptions: %w: no subscription reader configured", domain.ErrInvalidInput)
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.IngestReport{}, fmt.Errorf("open subscriptions: %w", err)
	}
	defer f.Close()

	subs, err := i.subscriptions.Read(f)
	if err != nil {
		return domain.IngestReport{}, fmt.Errorf("read subscriptions %s: %w", path, err)
	}

	urls := make([]string, 0, len(subs))
	for _, sub := range subs {
		urls = append(urls, sub.URL)
	}
	logger.Debug("%s lists %d feeds", path, len(urls))

	return i.IngestFeeds(ctx, urls)
}

// IngestFile parses a feed document stored on disk.
func (i *Ingestor) IngestFile(ctx context.Context, path string) (domain.IngestReport, error) {
	if i.feeds == nil {
		return domain.IngestReport{}, fmt.Errorf("ingest file: %w: no feed source configured", domain.ErrFeedUnavailable)
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.IngestReport{}, fmt.Errorf("open feed file: %w", err)
	}
	defer f.Close()

	feed, err := i.feeds.Parse(ctx, path, f)
	if err != nil {
		return domain.IngestReport{}, fmt.Errorf("parse %s: %w", path, err)
	}

	report := i.ingestFeed(ctx, feed)
	return report, i.fetchPictures(ctx)
}

// ingestFeed normalises the items of one feed and adds them in document
// order. Failure indexes refer to item positions within the feed.
func (i *Ingestor) ingestFeed(ctx context.Context, feed *domain.Feed) domain.IngestReport {
	var (
		report  domain.IngestReport
		records []domain.ArticleFields
		origin  []int
	)

	for n, item := range feed.Items {
		fields := item.Fields
		if i.normaliser != nil {
			normalised, err := i.normaliser.Normalise(ctx, fields)
			if err != nil {
				report.Failures = append(report.Failures, domain.IngestFailure{Index: n, Source: feed.URL, Err: err})
				continue
			}
			fields = normalised
		}
		records = append(records, fields)
		origin = append(origin, n)

		if i.pictures != nil {
			for _, url := range item.Pictures {
				i.pictures.Add(url)
			}
		}
	}

	added := i.corpus.IngestFromSource(ctx, records)
	for n := range added.Failures {
		added.Failures[n].Index = origin[added.Failures[n].Index]
		added.Failures[n].Source = feed.URL
	}
	report.Merge(added)

	logger.Debug("feed %s: %d items, %d added", feed.URL, len(feed.Items), added.Added)
	return report
}

func (i *Ingestor) fetchPictures(ctx context.Context) error {
	if i.pictures == nil {
		return nil
	}
	if err := i.pictures.FetchAll(ctx); err != nil {
		return fmt.Errorf("fetch pictures: %w", err)
	}
	return nil
}
