package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
)

func TestArticlesListCmd_Use(t *testing.T) {
	assert.Equal(t, "list", articlesListCmd.Use)
	assert.Equal(t, "List articles in arrival order", articlesListCmd.Short)
}

func TestArticlesList_Table(t *testing.T) {
	cleanup := setupTestServices(t, sampleRecords...)
	defer cleanup()

	out, err := execute(t, "articles", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "2024-01-20 00:00")
	assert.Contains(t, out, "3 articles")
}

func TestArticlesList_Limit(t *testing.T) {
	cleanup := setupTestServices(t, sampleRecords...)
	defer cleanup()

	out, err := execute(t, "articles", "list", "-n", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "Beta")
	assert.NotContains(t, out, "Gamma")
}

func TestArticlesList_JSON(t *testing.T) {
	cleanup := setupTestServices(t, sampleRecords...)
	defer cleanup()

	out, err := execute(t, "articles", "list", "--json")
	require.NoError(t, err)

	var records []domain.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 3)
	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "2024-01-01T00:00:00Z", records[0].Published)
}

func TestArticlesList_Empty(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "articles", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No articles.")
}

func TestArticlesShow(t *testing.T) {
	cleanup := setupTestServices(t, sampleRecords...)
	defer cleanup()

	out, err := execute(t, "articles", "show", "c")

	require.NoError(t, err)
	assert.Contains(t, out, "Gamma")
	assert.Contains(t, out, "ID:        c")
	assert.Contains(t, out, "gamma news gamma")
}

func TestArticlesShow_NotFound(t *testing.T) {
	cleanup := setupTestServices(t, sampleRecords...)
	defer cleanup()

	_, err := execute(t, "articles", "show", "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArticlesExport_YAMLRoundTrip(t *testing.T) {
	cleanup := setupTestServices(t, sampleRecords...)
	defer cleanup()

	out, err := execute(t, "articles", "export", "--format", "yaml")
	require.NoError(t, err)

	var records []domain.Record
	require.NoError(t, yaml.Unmarshal([]byte(out), &records))
	require.Len(t, records, 3)
	assert.Equal(t, "gamma news gamma", records[2].Content)
}

func TestArticlesExport_ToFileAndReingest(t *testing.T) {
	cleanup := setupTestServices(t, sampleRecords...)
	defer cleanup()

	path := filepath.Join(t.TempDir(), "articles.json")
	_, err := execute(t, "articles", "export", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id": "b"`)

	out, err := execute(t, "ingest", "records", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Added 0 articles")
	assert.Contains(t, out, "3 duplicates")
}

func TestArticlesExport_UnknownFormat(t *testing.T) {
	cleanup := setupTestServices(t, sampleRecords...)
	defer cleanup()

	_, err := execute(t, "articles", "export", "--format", "xml")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestArticlesCmd_NoService(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()
	corpusService = nil

	_, err := execute(t, "articles", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "corpus service not configured")
}
