package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("ingest.workers", 8))
	require.NoError(t, store.Set("ingest.workers", 16))

	val, ok := store.Get("ingest.workers")
	assert.True(t, ok)
	assert.Equal(t, 16, val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("corpus.data_dir", "/tmp/corpus"))
	require.NoError(t, store.Set("ingest.workers", int64(6)))
	require.NoError(t, store.Set("pictures.rate", 2.5))
	require.NoError(t, store.Set("hot.samples", 12))
	require.NoError(t, store.Set("corpus.use_store", true))
	require.NoError(t, store.Set("ingest.feeds", []any{"https://a.example/rss", 7, "https://b.example/atom"}))

	assert.Equal(t, "/tmp/corpus", store.GetString("corpus.data_dir"))
	assert.Equal(t, 6, store.GetInt("ingest.workers"))
	assert.InDelta(t, 2.5, store.GetFloat("pictures.rate"), 1e-12)
	assert.InDelta(t, 12.0, store.GetFloat("hot.samples"), 1e-12)
	assert.True(t, store.GetBool("corpus.use_store"))
	assert.Equal(t, []string{"https://a.example/rss", "https://b.example/atom"}, store.GetStringSlice("ingest.feeds"))
}

func TestConfigStore_TypedGetters_MissingOrWrongType(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("wrong", struct{}{}))

	for _, key := range []string{"missing", "wrong"} {
		t.Run(key, func(t *testing.T) {
			assert.Empty(t, store.GetString(key))
			assert.Zero(t, store.GetInt(key))
			assert.Zero(t, store.GetFloat(key))
			assert.False(t, store.GetBool(key))
			assert.Nil(t, store.GetStringSlice(key))
		})
	}
}

func TestConfigStore_GetStringSlice_ReturnsCopy(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("corpus.stop_words", []string{"the", "a"}))

	words := store.GetStringSlice("corpus.stop_words")
	words[0] = "changed"

	assert.Equal(t, []string{"the", "a"}, store.GetStringSlice("corpus.stop_words"))
}

func TestConfigStore_SaveAndLoadAreNoOps(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("key", "value"))

	require.NoError(t, store.Save())
	require.NoError(t, store.Load())

	assert.Equal(t, "value", store.GetString("key"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = store.Set(fmt.Sprintf("key.%d", i), i)
		}(i)
		go func(i int) {
			defer wg.Done()
			_ = store.GetInt(fmt.Sprintf("key.%d", i))
		}(i)
	}
	wg.Wait()

	for i := 0; i < 20; i++ {
		assert.Equal(t, i, store.GetInt(fmt.Sprintf("key.%d", i)))
	}
}
