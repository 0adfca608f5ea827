package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change corpus, ingestion, picture and hot term settings.

Settings are stored in config.toml under the user configuration directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a setting. Available keys:

  corpus.use_store   - mirror articles into the article database (true/false)
  corpus.data_dir    - directory of the article database
  ingest.workers     - feeds fetched at once (1-64)
  ingest.timeout     - timeout of a single feed fetch (e.g. 30s)
  pictures.enabled   - download pictures referenced by feed items (true/false)
  pictures.dir       - picture cache directory
  pictures.rate      - picture downloads started per second
  hot.samples        - default number of hot term sample dates
  hot.k              - default number of terms per hot term sample`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Corpus]")
	cmd.Printf("  Use store: %t\n", settings.Corpus.UseStore)
	cmd.Printf("  Data dir: %s\n", orDefault(settings.Corpus.DataDir))
	cmd.Printf("  Stop words: %d\n", len(settings.Corpus.StopWords))
	cmd.Println()

	cmd.Println("[Ingest]")
	cmd.Printf("  Feeds: %d\n", len(settings.Ingest.Feeds))
	cmd.Printf("  Workers: %d\n", settings.Ingest.Workers)
	cmd.Printf("  Timeout: %s\n", settings.Ingest.Timeout)
	cmd.Println()

	cmd.Println("[Pictures]")
	cmd.Printf("  Enabled: %t\n", settings.Pictures.Enabled)
	cmd.Printf("  Dir: %s\n", orDefault(settings.Pictures.Dir))
	cmd.Printf("  Rate: %g/s\n", settings.Pictures.Rate)
	cmd.Println()

	cmd.Println("[Hot terms]")
	cmd.Printf("  Samples: %d\n", settings.Hot.Samples)
	cmd.Printf("  K: %d\n", settings.Hot.K)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := applySetting(settings, args[0], args[1]); err != nil {
		return err
	}
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("%s set to %s\n", args[0], args[1])
	return nil
}

// applySetting parses value into the field named by key.
func applySetting(settings *domain.AppSettings, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "corpus.use_store":
		settings.Corpus.UseStore, err = strconv.ParseBool(value)
	case "corpus.data_dir":
		settings.Corpus.DataDir = value
	case "ingest.workers":
		settings.Ingest.Workers, err = strconv.Atoi(value)
	case "ingest.timeout":
		settings.Ingest.Timeout, err = time.ParseDuration(value)
	case "pictures.enabled":
		settings.Pictures.Enabled, err = strconv.ParseBool(value)
	case "pictures.dir":
		settings.Pictures.Dir = value
	case "pictures.rate":
		settings.Pictures.Rate, err = strconv.ParseFloat(value, 64)
	case "hot.samples":
		settings.Hot.Samples, err = strconv.Atoi(value)
	case "hot.k":
		settings.Hot.K, err = strconv.Atoi(value)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
	}
	return nil
}

func orDefault(value string) string {
	if value == "" {
		return "(default)"
	}
	return value
}
