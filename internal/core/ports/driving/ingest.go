package driving

import (
	"context"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
)

// IngestService turns external feeds into corpus articles.
type IngestService interface {
	// IngestRecords adds raw records to the corpus.
	IngestRecords(ctx context.Context, records []domain.ArticleFields) domain.IngestReport

	// IngestFeeds fetches the feeds and adds their items. A failing feed
	// is reported in the returned error; other feeds still count.
	IngestFeeds(ctx context.Context, urls []string) (domain.IngestReport, error)

	// IngestSubscriptions reads an OPML file and ingests every listed feed.
	IngestSubscriptions(ctx context.Context, path string) (domain.IngestReport, error)

	// IngestFile parses a feed document stored on disk.
	IngestFile(ctx context.Context, path string) (domain.IngestReport, error)
}
