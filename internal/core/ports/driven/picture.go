package driven

import (
	"context"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
)

// PictureFetcher collects picture URLs and downloads them to a local cache.
type PictureFetcher interface {
	// Add queues a picture URL. Adding a URL twice is a no-op.
	Add(url string)

	// Pictures returns the known pictures in the order they were added.
	Pictures() []domain.Picture

	// FetchAll downloads every pending picture. Individual failures are
	// recorded on the picture and joined into the returned error.
	FetchAll(ctx context.Context) error
}
