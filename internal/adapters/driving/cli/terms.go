package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
)

var (
	termsK        int
	termsJSON     bool
	termsArticles string
)

var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "Term weighting over the corpus",
	Long: `Term weighting over the corpus. A term's weight is its inverse document
frequency ln(N/df), where N is the number of articles considered and df the
number of those articles containing the term.`,
}

var termsRelevantCmd = &cobra.Command{
	Use:   "relevant",
	Short: "Show the most relevant terms",
	Args:  cobra.NoArgs,
	RunE:  runTermsRelevant,
}

var termsIDFCmd = &cobra.Command{
	Use:   "idf [term]",
	Short: "Show the inverse document frequency of a term",
	Args:  cobra.ExactArgs(1),
	RunE:  runTermsIDF,
}

var termsWeightsCmd = &cobra.Command{
	Use:   "weights [term...]",
	Short: "Weigh terms over a set of articles",
	Long: `Weigh terms over a set of articles. Without terms every term of the
selected articles is weighed. Without --articles every article is used.`,
	RunE: runTermsWeights,
}

func init() {
	termsRelevantCmd.Flags().IntVarP(&termsK, "k", "k", 10, "number of terms (0 = all)")
	termsRelevantCmd.Flags().BoolVar(&termsJSON, "json", false, "output terms as JSON")
	termsIDFCmd.Flags().StringVar(&termsArticles, "articles", "", "comma separated article IDs (default: all)")
	termsWeightsCmd.Flags().StringVar(&termsArticles, "articles", "", "comma separated article IDs (default: all)")
	termsWeightsCmd.Flags().BoolVar(&termsJSON, "json", false, "output weights as JSON")

	termsCmd.AddCommand(termsRelevantCmd)
	termsCmd.AddCommand(termsIDFCmd)
	termsCmd.AddCommand(termsWeightsCmd)
	rootCmd.AddCommand(termsCmd)
}

func runTermsRelevant(cmd *cobra.Command, _ []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	weights, err := corpusService.MostRelevantTerms(termsK)
	if err != nil {
		return fmt.Errorf("weighting failed: %w", err)
	}
	return outputWeights(cmd, weights, termsJSON)
}

func runTermsIDF(cmd *cobra.Command, args []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	idf, err := corpusService.InverseDocumentFrequency(args[0], splitList(termsArticles))
	if err != nil {
		return err
	}
	cmd.Printf("%s\t%s\n", args[0], formatWeight(idf))
	return nil
}

func runTermsWeights(cmd *cobra.Command, args []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	var terms []string
	if len(args) > 0 {
		terms = args
	}
	weights, err := corpusService.TermWeighting(terms, splitList(termsArticles))
	if err != nil {
		return fmt.Errorf("weighting failed: %w", err)
	}

	ranked := make([]domain.TermWeight, 0, len(weights))
	for term, w := range weights {
		ranked = append(ranked, domain.TermWeight{Term: term, Weight: w})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Weight != ranked[j].Weight {
			return ranked[i].Weight > ranked[j].Weight
		}
		return ranked[i].Term < ranked[j].Term
	})
	return outputWeights(cmd, ranked, termsJSON)
}

func outputWeights(cmd *cobra.Command, weights []domain.TermWeight, asJSON bool) error {
	if asJSON {
		if weights == nil {
			weights = []domain.TermWeight{}
		}
		return writeJSON(cmd.OutOrStdout(), weights)
	}

	if len(weights) == 0 {
		cmd.Println("No terms found.")
		return nil
	}

	t := newTable("TERM", "WEIGHT")
	for _, w := range weights {
		t.add(w.Term, formatWeight(w.Weight))
	}
	t.render(cmd.OutOrStdout())
	return nil
}

// splitList splits a comma separated flag value. An empty value yields nil.
func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
