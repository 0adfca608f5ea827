// Package cli provides the cobra command tree for feedcorpus.
package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/feedcorpus/internal/core/ports/driving"
	"github.com/custodia-labs/feedcorpus/internal/logger"
)

// version is set at build time.
var version = "dev"

// Services configured by SetServices or by the bootstrap hook.
var (
	corpusService   driving.CorpusService
	ingestService   driving.IngestService
	settingsService driving.SettingsService
	metricsHandler  http.Handler
	watchDir        WatchFunc
)

// WatchFunc watches dir and calls onFile for every settled feed file until
// ctx is cancelled.
type WatchFunc func(ctx context.Context, dir string, onFile func(path string)) error

// Services bundles the ports the commands drive.
type Services struct {
	Corpus   driving.CorpusService
	Ingest   driving.IngestService
	Settings driving.SettingsService

	// Metrics is served next to the MCP endpoint when set.
	Metrics http.Handler

	// Watch backs "ingest watch".
	Watch WatchFunc

	// Close releases the resources behind the services.
	Close func() error
}

// Bootstrap builds the services from the configuration in configDir. It
// runs once, after flags are parsed, so wiring logs honour --verbose.
type Bootstrap func(ctx context.Context, configDir string) (Services, error)

var (
	bootstrap    Bootstrap
	closeService func() error
)

var (
	verbose   bool
	logLevel  string
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "feedcorpus",
	Short: "Collect RSS and Atom feeds into a corpus and explore its terms",
	Long: `feedcorpus collects articles from RSS and Atom feeds into a corpus and
answers term statistics questions over it: inverse document frequency,
most relevant terms, articles near a date and hot terms over time.

The corpus is persisted between runs and can be served to AI assistants
through the Model Context Protocol.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return shutdown()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default: user config dir)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the function that wires the services.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs already wired services.
func SetServices(s Services) {
	corpusService = s.Corpus
	ingestService = s.Ingest
	settingsService = s.Settings
	metricsHandler = s.Metrics
	watchDir = s.Watch
	closeService = s.Close
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	defer func() { _ = shutdown() }()
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if logLevel != "" {
		level, err := logger.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
	}

	if bootstrap == nil || corpusService != nil || cmd == versionCmd {
		return nil
	}
	services, err := bootstrap(commandContext(cmd), configDir)
	if err != nil {
		return fmt.Errorf("starting feedcorpus: %w", err)
	}
	SetServices(services)
	return nil
}

func shutdown() error {
	if closeService == nil {
		return nil
	}
	closeFn := closeService
	closeService = nil
	return closeFn()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
