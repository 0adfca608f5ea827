package driven

import (
	"context"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
)

// ArticleStore persists article records keyed by article ID.
// From the corpus' point of view it is append-only.
type ArticleStore interface {
	// Insert stores a record. Inserting an ID that is already stored
	// is a no-op, so a retried insert never duplicates a record.
	Insert(ctx context.Context, record domain.Record) error

	// Get retrieves a record by article ID.
	Get(ctx context.Context, id string) (*domain.Record, error)

	// List returns all records in insertion order.
	List(ctx context.Context) ([]domain.Record, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Close releases the underlying resources.
	Close() error
}
