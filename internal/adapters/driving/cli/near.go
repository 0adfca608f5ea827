package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
)

var (
	nearWindow time.Duration
	nearK      int
	nearJSON   bool
)

var nearCmd = &cobra.Command{
	Use:   "near [date]",
	Short: "Show the most relevant terms of articles near a date",
	Long: `Show the most relevant terms among the articles published or updated
within --window of the date. The date is ISO-8601, e.g. 2024-01-31 or
2024-01-31T12:00:00Z.`,
	Args: cobra.ExactArgs(1),
	RunE: runNear,
}

func init() {
	nearCmd.Flags().DurationVarP(&nearWindow, "window", "w", 24*time.Hour, "half-width of the window around the date")
	nearCmd.Flags().IntVarP(&nearK, "k", "k", 10, "number of terms (0 = all)")
	nearCmd.Flags().BoolVar(&nearJSON, "json", false, "output terms as JSON")
	rootCmd.AddCommand(nearCmd)
}

func runNear(cmd *cobra.Command, args []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}
	if nearWindow < 0 {
		return fmt.Errorf("%w: window must not be negative", domain.ErrInvalidInput)
	}

	date, err := domain.ParseTimestamp(args[0])
	if err != nil {
		return err
	}

	weights, err := corpusService.ArticlesNearDate(date, nearWindow, nearK)
	if err != nil {
		return fmt.Errorf("weighting failed: %w", err)
	}
	if weights == nil && !nearJSON {
		cmd.Printf("No articles within %s of %s.\n", nearWindow, domain.FormatTimestamp(date))
		return nil
	}
	return outputWeights(cmd, weights, nearJSON)
}
