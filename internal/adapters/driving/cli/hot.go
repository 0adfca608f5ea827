package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
)

var (
	hotStart   string
	hotEnd     string
	hotSamples int
	hotK       int
	hotJSON    bool
)

// hotJSONOutput is the JSON shape of a hot term matrix.
type hotJSONOutput struct {
	Dates  []string             `json:"dates"`
	Window string               `json:"window"`
	Terms  map[string][]float64 `json:"terms"`
}

var hotCmd = &cobra.Command{
	Use:   "hot",
	Short: "Show how the most relevant terms change over time",
	Long: `Sample the most relevant terms at evenly spaced dates. Each sample weighs
the articles published or updated within a tenth of the span of its date.
Without --start and --end the span covers every article with a margin of a
tenth on each side.`,
	Args: cobra.NoArgs,
	RunE: runHot,
}

func init() {
	hotCmd.Flags().StringVar(&hotStart, "start", "", "ISO-8601 start of the span")
	hotCmd.Flags().StringVar(&hotEnd, "end", "", "ISO-8601 end of the span")
	hotCmd.Flags().IntVarP(&hotSamples, "samples", "s", 0, "number of sample dates (default from settings)")
	hotCmd.Flags().IntVarP(&hotK, "k", "k", 0, "terms kept per sample (default from settings)")
	hotCmd.Flags().BoolVar(&hotJSON, "json", false, "output the matrix as JSON")
	rootCmd.AddCommand(hotCmd)
}

func runHot(cmd *cobra.Command, _ []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	opts, err := hotOptions()
	if err != nil {
		return err
	}

	hot, err := corpusService.HotTermMatrix(opts)
	if err != nil {
		return fmt.Errorf("hot terms failed: %w", err)
	}

	if hotJSON {
		out := hotJSONOutput{Window: hot.Window.String(), Terms: map[string][]float64{}}
		for _, d := range hot.Dates {
			out.Dates = append(out.Dates, domain.FormatTimestamp(d))
		}
		for _, term := range hot.Matrix.Rows() {
			row := make([]float64, 0, len(hot.Dates))
			for _, d := range hot.Dates {
				row = append(row, hot.Matrix.Get(term, domain.FormatTimestamp(d)))
			}
			out.Terms[term] = row
		}
		return writeJSON(cmd.OutOrStdout(), out)
	}

	if len(hot.Dates) == 0 {
		cmd.Println("No articles.")
		return nil
	}

	cmd.Printf("Window: ±%s\n\n", hot.Window)
	for _, d := range hot.Dates {
		col := domain.FormatTimestamp(d)
		var terms []string
		for _, term := range hot.Matrix.Rows() {
			if w := hot.Matrix.Get(term, col); w > 0 {
				terms = append(terms, fmt.Sprintf("%s (%s)", term, formatWeight(w)))
			}
		}
		line := dimStyle.Render("no articles")
		if len(terms) > 0 {
			line = truncate(strings.Join(terms, ", "), terminalWidth(cmd.OutOrStdout())-20)
		}
		cmd.Printf("%s  %s\n", headerStyle.Render(d.Format("2006-01-02 15:04")), line)
	}
	return nil
}

// hotOptions builds the matrix options from the flags, falling back to
// the settings for samples and k.
func hotOptions() (domain.HotTermOptions, error) {
	opts := domain.HotTermOptions{Samples: hotSamples, K: hotK}

	var err error
	if hotStart != "" {
		if opts.Start, err = domain.ParseTimestamp(hotStart); err != nil {
			return opts, fmt.Errorf("start: %w", err)
		}
	}
	if hotEnd != "" {
		if opts.End, err = domain.ParseTimestamp(hotEnd); err != nil {
			return opts, fmt.Errorf("end: %w", err)
		}
	}
	if !opts.Start.IsZero() && !opts.End.IsZero() && opts.End.Before(opts.Start) {
		return opts, fmt.Errorf("%w: end before start", domain.ErrInvalidInput)
	}

	if settingsService != nil && (opts.Samples <= 0 || opts.K <= 0) {
		settings, err := settingsService.Get()
		if err != nil {
			return opts, fmt.Errorf("failed to load settings: %w", err)
		}
		if opts.Samples <= 0 {
			opts.Samples = settings.Hot.Samples
		}
		if opts.K <= 0 {
			opts.K = settings.Hot.K
		}
	}
	return opts, nil
}
