package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
	"github.com/custodia-labs/feedcorpus/internal/core/ports/driven"
)

// Ensure ArticleStore implements the interface.
var _ driven.ArticleStore = (*ArticleStore)(nil)

// ArticleStore is an in-memory implementation of driven.ArticleStore.
type ArticleStore struct {
	mu      sync.RWMutex
	order   []string
	records map[string]domain.Record
	closed  bool
}

// NewArticleStore creates a new in-memory article store.
func NewArticleStore() *ArticleStore {
	return &ArticleStore{
		records: make(map[string]domain.Record),
	}
}

// Insert stores a record unless its ID is already stored.
func (s *ArticleStore) Insert(_ context.Context, record domain.Record) error {
	if record.ID == "" {
		return fmt.Errorf("%w: record without id", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStoreUnavailable
	}
	if _, ok := s.records[record.ID]; ok {
		return nil
	}
	s.records[record.ID] = record
	s.order = append(s.order, record.ID)
	return nil
}

// Get retrieves a record by article ID.
func (s *ArticleStore) Get(_ context.Context, id string) (*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// List returns all records in insertion order.
func (s *ArticleStore) List(_ context.Context) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, domain.ErrStoreUnavailable
	}
	out := make([]domain.Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}
	return out, nil
}

// Count returns the number of stored records.
func (s *ArticleStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order), nil
}

// Close marks the store closed. Records stay readable through Get.
func (s *ArticleStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
