package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
)

func TestFindCmd_Use(t *testing.T) {
	assert.Equal(t, "find [term...]", findCmd.Use)
	flag := findCmd.Flags().Lookup("limit")
	require.NotNil(t, flag)
	assert.Equal(t, "n", flag.Shorthand)
}

func TestFind_RanksByFrequency(t *testing.T) {
	cleanup := setupTestServices(t, sampleRecords...)
	defer cleanup()

	out, err := execute(t, "find", "--json", "gamma", "alpha")
	require.NoError(t, err)

	var results []findResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "c", results[0].ID)
	assert.InDelta(t, 2/2.23606797749979, results[0].Score, 1e-9)
	assert.Equal(t, "a", results[1].ID)
}

func TestFind_Table(t *testing.T) {
	cleanup := setupTestServices(t, sampleRecords...)
	defer cleanup()

	out, err := execute(t, "find", "news", "-n", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "0.7071")
	assert.Contains(t, out, "2 articles")
	assert.NotContains(t, out, "Gamma")
}

func TestFind_NoMatch(t *testing.T) {
	cleanup := setupTestServices(t, sampleRecords...)
	defer cleanup()

	out, err := execute(t, "find", "cornichon")

	require.NoError(t, err)
	assert.Contains(t, out, "No articles found.")
}

func TestNear(t *testing.T) {
	cleanup := setupTestServices(t, sampleRecords...)
	defer cleanup()

	out, err := execute(t, "near", "2024-01-01", "--json")
	require.NoError(t, err)

	var weights []domain.TermWeight
	require.NoError(t, json.Unmarshal([]byte(out), &weights))
	require.Len(t, weights, 3)
	assert.Equal(t, "alpha", weights[0].Term)
	assert.InDelta(t, 0.6931, weights[0].Weight, 1e-4)
	assert.Equal(t, "news", weights[2].Term)
}

func TestNear_NothingInWindow(t *testing.T) {
	cleanup := setupTestServices(t, sampleRecords...)
	defer cleanup()

	out, err := execute(t, "near", "2023-06-01", "-w", "1h")

	require.NoError(t, err)
	assert.Contains(t, out, "No articles within 1h0m0s")
}

func TestNear_InvalidDate(t *testing.T) {
	cleanup := setupTestServices(t, sampleRecords...)
	defer cleanup()

	_, err := execute(t, "near", "last tuesday")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHot_JSON(t *testing.T) {
	cleanup := setupTestServices(t, sampleRecords...)
	defer cleanup()

	out, err := execute(t, "hot", "--json", "--samples", "3", "-k", "2")
	require.NoError(t, err)

	var hot hotJSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &hot))
	assert.Len(t, hot.Dates, 3)
	assert.NotEmpty(t, hot.Window)
	for term, weights := range hot.Terms {
		assert.Len(t, weights, 3, term)
	}
}

func TestHot_DefaultsFromSettings(t *testing.T) {
	cleanup := setupTestServices(t, sampleRecords...)
	defer cleanup()

	settings, err := settingsService.Get()
	require.NoError(t, err)
	settings.Hot.Samples = 4
	require.NoError(t, settingsService.Save(settings))

	out, err := execute(t, "hot", "--json")
	require.NoError(t, err)

	var hot hotJSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &hot))
	assert.Len(t, hot.Dates, 4)
}

func TestHot_Text(t *testing.T) {
	cleanup := setupTestServices(t, sampleRecords...)
	defer cleanup()

	out, err := execute(t, "hot", "--start", "2024-01-01", "--end", "2024-01-21", "-s", "3")

	require.NoError(t, err)
	assert.Contains(t, out, "Window: ±48h0m0s")
	assert.Equal(t, 3, strings.Count(out, "2024-01-"))
}

func TestHot_SubNanosecondSpacing(t *testing.T) {
	cleanup := setupTestServices(t, sampleRecords...)
	defer cleanup()

	out, err := execute(t, "hot", "--start", "2024-01-01T00:00:00Z",
		"--end", "2024-01-01T00:00:00.000000001Z", "--samples", "5")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "2024-01-01 00:00"))

	out, err = execute(t, "hot", "--json", "--start", "2024-01-01T00:00:00Z",
		"--end", "2024-01-01T00:00:00.000000001Z", "--samples", "5")
	require.NoError(t, err)

	var hot hotJSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &hot))
	assert.Len(t, hot.Dates, 2)
	for term, weights := range hot.Terms {
		assert.Len(t, weights, 2, term)
	}
}

func TestHot_EndBeforeStart(t *testing.T) {
	cleanup := setupTestServices(t, sampleRecords...)
	defer cleanup()

	_, err := execute(t, "hot", "--start", "2024-02-01", "--end", "2024-01-01")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHot_EmptyCorpus(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "hot")

	require.NoError(t, err)
	assert.Contains(t, out, "No articles.")
}
