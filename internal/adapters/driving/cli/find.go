package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	findLimit int
	findJSON  bool
)

// findResult is the JSON shape of one find match.
type findResult struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Link  string  `json:"link,omitempty"`
	Score float64 `json:"score"`
}

var findCmd = &cobra.Command{
	Use:   "find [term...]",
	Short: "Find articles containing any of the terms",
	Long: `Find articles whose content contains at least one of the terms. Articles
are ranked by the sum of their term frequencies for the given terms.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFind,
}

func init() {
	findCmd.Flags().IntVarP(&findLimit, "limit", "n", 10, "maximum number of articles (0 = all)")
	findCmd.Flags().BoolVar(&findJSON, "json", false, "output matches as JSON")
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	scores := corpusService.FindArticles(args)
	if findLimit > 0 && len(scores) > findLimit {
		scores = scores[:findLimit]
	}

	if findJSON {
		results := make([]findResult, len(scores))
		for i := range scores {
			a := &scores[i].Article
			results[i] = findResult{ID: a.ID(), Title: a.Title, Link: a.Link, Score: scores[i].Score}
		}
		return writeJSON(cmd.OutOrStdout(), results)
	}

	if len(scores) == 0 {
		cmd.Println("No articles found.")
		return nil
	}

	t := newTable("SCORE", "ID", "TITLE")
	for i := range scores {
		a := &scores[i].Article
		t.add(formatWeight(scores[i].Score), a.ID(), a.Title)
	}
	t.render(cmd.OutOrStdout())
	cmd.Println(dimStyle.Render(fmt.Sprintf("%d articles", len(scores))))
	return nil
}
