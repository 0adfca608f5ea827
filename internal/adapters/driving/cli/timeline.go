package cli

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
)

const (
	barChar   = "█"
	pointChar = "│"
	emptyChar = "·"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Draw article lifetimes as non-overlapping lanes",
	Long: `Draw every article as a bar running from its publication to its last
update. Bars that do not overlap share a lane.`,
	Args: cobra.NoArgs,
	RunE: runTimeline,
}

func init() {
	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(cmd *cobra.Command, _ []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	tl := corpusService.Timeline()
	first, last, ok := tl.Limits()
	if !ok {
		cmd.Println("No articles.")
		return nil
	}

	lanes := tl.Lanes()
	width := terminalWidth(cmd.OutOrStdout()) - 2

	cmd.Printf("%s → %s (%s, %d lanes)\n",
		headerStyle.Render(domain.FormatTimestamp(first)),
		headerStyle.Render(domain.FormatTimestamp(last)),
		tl.Duration().Round(time.Minute), len(lanes))
	for _, lane := range lanes {
		cmd.Println(drawLane(lane, first, tl.Duration(), width))
	}
	for i, lane := range lanes {
		labels := make([]string, len(lane))
		for j, p := range lane {
			labels[j] = p.Label
		}
		cmd.Println(dimStyle.Render(truncate(laneName(i)+": "+strings.Join(labels, ", "), width)))
	}
	return nil
}

// drawLane renders the periods of one lane on a line of width cells
// spanning total from first.
func drawLane(lane []domain.Period, first time.Time, total time.Duration, width int) string {
	cells := make([]string, width)
	for i := range cells {
		cells[i] = emptyChar
	}

	position := func(t time.Time) int {
		if total <= 0 {
			return 0
		}
		pos := int(float64(t.Sub(first)) / float64(total) * float64(width-1))
		return min(max(pos, 0), width-1)
	}

	for _, p := range lane {
		start, end := position(p.Start), position(p.End)
		if start == end {
			cells[start] = pointChar
			continue
		}
		for i := start; i <= end; i++ {
			cells[i] = barChar
		}
	}
	return strings.Join(cells, "")
}

func laneName(i int) string {
	return "lane " + string(rune('A'+i%26))
}
