package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Add articles to the corpus",
	Long: `Add articles to the corpus from feeds, feed files, OPML subscription
lists or raw records. Articles whose ID is already held are skipped.`,
}

var ingestFeedsCmd = &cobra.Command{
	Use:   "feeds [url...]",
	Short: "Fetch feeds and add their items",
	Long: `Fetch RSS or Atom feeds and add their items to the corpus.
Without arguments every subscribed feed is fetched.`,
	RunE: runIngestFeeds,
}

var ingestFileCmd = &cobra.Command{
	Use:   "file [path...]",
	Short: "Add the items of feed documents stored on disk",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIngestFile,
}

var ingestOPMLCmd = &cobra.Command{
	Use:   "opml [path]",
	Short: "Fetch every feed listed in an OPML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngestOPML,
}

var ingestRecordsCmd = &cobra.Command{
	Use:   "records [path]",
	Short: "Add raw article records from a JSON or YAML file",
	Long: `Add raw article records from a file holding a list of objects with the
fields id, title, link, published, updated, author, summary and content.
Files ending in .yaml or .yml are read as YAML, anything else as JSON.
Use "-" to read JSON from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngestRecords,
}

var ingestWatchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Ingest feed files as they appear in a directory",
	Long: `Watch a directory and ingest every .xml, .rss or .atom file written to it.
Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngestWatch,
}

func init() {
	ingestCmd.AddCommand(ingestFeedsCmd)
	ingestCmd.AddCommand(ingestFileCmd)
	ingestCmd.AddCommand(ingestOPMLCmd)
	ingestCmd.AddCommand(ingestRecordsCmd)
	ingestCmd.AddCommand(ingestWatchCmd)
	rootCmd.AddCommand(ingestCmd)
}

func runIngestFeeds(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	urls := args
	if len(urls) == 0 {
		if settingsService == nil {
			return errors.New("settings service not configured")
		}
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		urls = settings.Ingest.Feeds
	}
	if len(urls) == 0 {
		cmd.Println("No feeds to fetch. Subscribe with 'feedcorpus feeds add <url>'.")
		return nil
	}

	report, err := ingestService.IngestFeeds(commandContext(cmd), urls)
	printReport(cmd, report)
	if err != nil {
		return fmt.Errorf("some feeds failed: %w", err)
	}
	return nil
}

func runIngestFile(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	var (
		total domain.IngestReport
		errs  []error
	)
	for _, path := range args {
		report, err := ingestService.IngestFile(commandContext(cmd), path)
		total.Merge(report)
		if err != nil {
			errs = append(errs, err)
		}
	}
	printReport(cmd, total)
	return errors.Join(errs...)
}

func runIngestOPML(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	report, err := ingestService.IngestSubscriptions(commandContext(cmd), args[0])
	printReport(cmd, report)
	if err != nil {
		return fmt.Errorf("some feeds failed: %w", err)
	}
	return nil
}

func runIngestRecords(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	batch, err := readRecords(cmd, args[0])
	if err != nil {
		return err
	}

	report := ingestService.IngestRecords(commandContext(cmd), batch.records)
	printReport(cmd, batch.report(report))
	return nil
}

func runIngestWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}
	if watchDir == nil {
		return errors.New("watcher not configured")
	}

	ctx := commandContext(cmd)
	cmd.Printf("Watching %s for feed files (Ctrl+C to stop)\n", args[0])
	return watchDir(ctx, args[0], func(path string) {
		report, err := ingestService.IngestFile(ctx, path)
		if err != nil {
			cmd.PrintErrf("%s: %v\n", path, err)
			return
		}
		cmd.Printf("%s: ", filepath.Base(path))
		printReport(cmd, report)
	})
}

// recordBatch holds the records that decoded and the ones that did not,
// each with its position in the input.
type recordBatch struct {
	records   []domain.ArticleFields
	positions []int
	failures  []domain.IngestFailure
}

func (b *recordBatch) add(index int, fields domain.ArticleFields, err error) {
	if err != nil {
		b.failures = append(b.failures, domain.IngestFailure{
			Index: index,
			Err:   fmt.Errorf("%w: decoding record: %w", domain.ErrInvalidInput, err),
		})
		return
	}
	b.records = append(b.records, fields)
	b.positions = append(b.positions, index)
}

// report maps the failures of an ingested batch back to input positions
// and merges in the decode failures.
func (b *recordBatch) report(ingested domain.IngestReport) domain.IngestReport {
	for i := range ingested.Failures {
		if idx := ingested.Failures[i].Index; idx >= 0 && idx < len(b.positions) {
			ingested.Failures[i].Index = b.positions[idx]
		}
	}
	ingested.Failures = append(ingested.Failures, b.failures...)
	slices.SortStableFunc(ingested.Failures, func(x, y domain.IngestFailure) int {
		return x.Index - y.Index
	})
	return ingested
}

// readRecords decodes a list of article fields from path. The list itself
// must be well formed; a record that does not decode is reported on its
// own and the rest of the list is kept.
func readRecords(cmd *cobra.Command, path string) (*recordBatch, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	batch := &recordBatch{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var nodes []yaml.Node
		if err := yaml.Unmarshal(data, &nodes); err != nil {
			return nil, fmt.Errorf("%w: decoding %s: %w", domain.ErrInvalidInput, path, err)
		}
		for i := range nodes {
			var fields domain.ArticleFields
			err := nodes[i].Decode(&fields)
			batch.add(i, fields, err)
		}
	default:
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: decoding %s: %w", domain.ErrInvalidInput, path, err)
		}
		for i, msg := range raw {
			var fields domain.ArticleFields
			err := json.Unmarshal(msg, &fields)
			batch.add(i, fields, err)
		}
	}
	return batch, nil
}

func printReport(cmd *cobra.Command, report domain.IngestReport) {
	cmd.Println(successStyle.Render(fmt.Sprintf("Added %d articles", report.Added)) +
		dimStyle.Render(fmt.Sprintf(" (%d duplicates, %d failed)", report.Duplicates, len(report.Failures))))
	for _, f := range report.Failures {
		source := f.Source
		if source == "" {
			source = "record"
		}
		cmd.Println(failureStyle.Render(fmt.Sprintf("  %s #%d: %v", source, f.Index, f.Err)))
	}
}
