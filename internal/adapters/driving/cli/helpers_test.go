package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/feedcorpus/internal/adapters/driven/feed"
	"github.com/custodia-labs/feedcorpus/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/feedcorpus/internal/core/domain"
	"github.com/custodia-labs/feedcorpus/internal/core/services"
	"github.com/custodia-labs/feedcorpus/internal/normalisers/html"
)

// sampleRecords are three dated articles sharing the term "news".
var sampleRecords = []domain.ArticleFields{
	{ID: "a", Title: "Alpha", Content: "alpha news", Published: "2024-01-01T00:00:00Z"},
	{ID: "b", Title: "Beta", Content: "beta news", Published: "2024-01-02T00:00:00Z"},
	{ID: "c", Title: "Gamma", Content: "gamma news gamma", Published: "2024-01-20T00:00:00Z"},
}

// setupTestServices wires real services over in-memory stores, loads
// records into the corpus and returns a function restoring the previous
// services.
func setupTestServices(t *testing.T, records ...domain.ArticleFields) func() {
	t.Helper()

	prevCorpus, prevIngest, prevSettings := corpusService, ingestService, settingsService
	prevWatch, prevBootstrap := watchDir, bootstrap

	corpus := services.NewCorpus(nil)
	report := corpus.IngestFromSource(context.Background(), records)
	require.Empty(t, report.Failures)

	corpusService = corpus
	settingsService = services.NewSettingsService(memory.NewConfigStore())
	ingestService = services.NewIngestor(corpus, feed.NewSource(feed.Config{}), feed.NewOPMLReader(), html.New(), nil, 1)
	watchDir = nil
	bootstrap = nil

	return func() {
		corpusService, ingestService, settingsService = prevCorpus, prevIngest, prevSettings
		watchDir, bootstrap = prevWatch, prevBootstrap
	}
}

// execute runs the root command with args and returns its output.
// Flags are reset first since cobra keeps parsed values between runs.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
