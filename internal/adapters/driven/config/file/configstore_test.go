package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, FileName), store.Path())
}

func TestDefaultConfigDir(t *testing.T) {
	assert.Equal(t, "feedcorpus", filepath.Base(DefaultConfigDir()))
}

func TestNewConfigStore_NestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.Equal(t, filepath.Join(dir, FileName), store.Path())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0o600))

	_, err := NewConfigStore(filepath.Join(parent, "config"))
	assert.Error(t, err)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("not = [valid"), 0o600))

	_, err := NewConfigStore(dir)
	assert.Error(t, err)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("ingest.feeds", []string{"https://a.example/rss"}))
	require.NoError(t, store.Set("ingest.workers", 8))
	require.NoError(t, store.Set("ingest.timeout", "45s"))
	require.NoError(t, store.Set("pictures.rate", 1.5))
	require.NoError(t, store.Set("pictures.enabled", true))

	assert.Equal(t, "45s", store.GetString("ingest.timeout"))
	assert.Equal(t, 8, store.GetInt("ingest.workers"))
	assert.InDelta(t, 1.5, store.GetFloat("pictures.rate"), 1e-9)
	assert.InDelta(t, 8.0, store.GetFloat("ingest.workers"), 1e-9)
	assert.True(t, store.GetBool("pictures.enabled"))
	assert.Equal(t, []string{"https://a.example/rss"}, store.GetStringSlice("ingest.feeds"))

	// Mismatched and missing keys yield zero values.
	assert.Empty(t, store.GetString("ingest.workers"))
	assert.Zero(t, store.GetInt("ingest.timeout"))
	assert.Zero(t, store.GetFloat("pictures.enabled"))
	assert.False(t, store.GetBool("missing"))
	assert.Nil(t, store.GetStringSlice("ingest.workers"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_GetStringSlice_ReturnsCopy(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("corpus.stop_words", []string{"the", "a"}))

	words := store.GetStringSlice("corpus.stop_words")
	words[0] = "changed"

	assert.Equal(t, []string{"the", "a"}, store.GetStringSlice("corpus.stop_words"))
}

func TestConfigStore_PersistsNestedTables(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("ingest.workers", 6))
	require.NoError(t, store.Set("ingest.feeds", []string{"https://a.example/rss", "https://b.example/atom"}))
	require.NoError(t, store.Set("hot.k", 3))
	require.NoError(t, store.Set("pictures.rate", 2.5))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[ingest]")
	assert.Contains(t, string(raw), "[hot]")
	assert.NotContains(t, string(raw), "ingest.workers")

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, 6, reloaded.GetInt("ingest.workers"))
	assert.Equal(t, 3, reloaded.GetInt("hot.k"))
	assert.InDelta(t, 2.5, reloaded.GetFloat("pictures.rate"), 1e-9)
	assert.Equal(t, []string{"https://a.example/rss", "https://b.example/atom"}, reloaded.GetStringSlice("ingest.feeds"))
}

func TestConfigStore_LoadsHandWrittenFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[corpus]
use_store = false
stop_words = ["the", "of"]

[pictures]
rate = 3
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o600))

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	val, ok := store.Get("corpus.use_store")
	assert.True(t, ok)
	assert.Equal(t, false, val)
	assert.Equal(t, []string{"the", "of"}, store.GetStringSlice("corpus.stop_words"))
	assert.InDelta(t, 3.0, store.GetFloat("pictures.rate"), 1e-9)
}

func TestConfigStore_Load_Reset(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("hot.k", 4))
	require.NoError(t, os.Remove(store.Path()))

	require.NoError(t, store.Load())

	_, ok := store.Get("hot.k")
	assert.False(t, ok)
}

func TestConfigStore_Save_ConflictingKeys(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("hot", 1))

	err := store.Set("hot.k", 2)
	assert.Error(t, err)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newStore(t)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("hot.k", i)
		}()
		go func() {
			defer wg.Done()
			_ = store.GetInt("hot.k")
		}()
	}
	wg.Wait()

	assert.GreaterOrEqual(t, store.GetInt("hot.k"), 0)
}

func TestUnflattenMap(t *testing.T) {
	tree, err := unflattenMap(map[string]any{
		"a.b.c": 1,
		"a.d":   "x",
		"e":     true,
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": 1},
			"d": "x",
		},
		"e": true,
	}, tree)
	assert.Equal(t, map[string]any{"a.b.c": 1, "a.d": "x", "e": true}, flattenMap(tree, ""))
}
