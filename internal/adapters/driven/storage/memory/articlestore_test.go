package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
)

func TestNewArticleStore(t *testing.T) {
	store := NewArticleStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.records)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestArticleStore_Insert_Success(t *testing.T) {
	store := NewArticleStore()
	ctx := context.Background()

	record := domain.Record{
		ID:        "a-1",
		Title:     "First",
		Content:   "some words",
		Published: "2024-01-01T00:00:00Z",
		Updated:   "2024-01-02T00:00:00Z",
	}
	require.NoError(t, store.Insert(ctx, record))

	saved, err := store.Get(ctx, "a-1")
	require.NoError(t, err)
	assert.Equal(t, record, *saved)
}

func TestArticleStore_Insert_RepeatedIDIsNoOp(t *testing.T) {
	store := NewArticleStore()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, domain.Record{ID: "a-1", Title: "original"}))
	require.NoError(t, store.Insert(ctx, domain.Record{ID: "a-1", Title: "replacement"}))

	saved, err := store.Get(ctx, "a-1")
	require.NoError(t, err)
	assert.Equal(t, "original", saved.Title)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestArticleStore_Insert_MissingID(t *testing.T) {
	store := NewArticleStore()

	err := store.Insert(context.Background(), domain.Record{Title: "no id"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestArticleStore_Get_NotFound(t *testing.T) {
	store := NewArticleStore()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArticleStore_List_InsertionOrder(t *testing.T) {
	store := NewArticleStore()
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, store.Insert(ctx, domain.Record{ID: id}))
	}

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "c", records[0].ID)
	assert.Equal(t, "a", records[1].ID)
	assert.Equal(t, "b", records[2].ID)
}

func TestArticleStore_Closed(t *testing.T) {
	store := NewArticleStore()
	ctx := context.Background()
	require.NoError(t, store.Insert(ctx, domain.Record{ID: "a"}))
	require.NoError(t, store.Close())

	assert.ErrorIs(t, store.Insert(ctx, domain.Record{ID: "b"}), domain.ErrStoreUnavailable)
	_, err := store.List(ctx)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestArticleStore_ConcurrentInsert(t *testing.T) {
	store := NewArticleStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Insert(ctx, domain.Record{ID: fmt.Sprintf("a-%d", i%10)})
		}(i)
	}
	wg.Wait()

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, count)
}
