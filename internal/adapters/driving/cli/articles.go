package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
)

// Export formats.
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	articlesLimit int
	articlesJSON  bool
	exportFormat  string
	exportOutput  string
	showJSON      bool
)

var articlesCmd = &cobra.Command{
	Use:     "articles",
	Aliases: []string{"article"},
	Short:   "Inspect the articles in the corpus",
}

var articlesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List articles in arrival order",
	Args:  cobra.NoArgs,
	RunE:  runArticlesList,
}

var articlesShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a single article",
	Args:  cobra.ExactArgs(1),
	RunE:  runArticlesShow,
}

var articlesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every article as records",
	Long: `Export every article as a list of records in JSON or YAML.
The output can be read back with 'feedcorpus ingest records'.`,
	Args: cobra.NoArgs,
	RunE: runArticlesExport,
}

func init() {
	articlesListCmd.Flags().IntVarP(&articlesLimit, "limit", "n", 0, "maximum number of articles (0 = all)")
	articlesListCmd.Flags().BoolVar(&articlesJSON, "json", false, "output articles as JSON")
	articlesShowCmd.Flags().BoolVar(&showJSON, "json", false, "output the article as JSON")
	articlesExportCmd.Flags().StringVarP(&exportFormat, "format", "f", formatJSON, "output format (json, yaml)")
	articlesExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to a file instead of standard output")

	articlesCmd.AddCommand(articlesListCmd)
	articlesCmd.AddCommand(articlesShowCmd)
	articlesCmd.AddCommand(articlesExportCmd)
	rootCmd.AddCommand(articlesCmd)
}

func runArticlesList(cmd *cobra.Command, _ []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	articles := corpusService.Articles()
	if articlesLimit > 0 && len(articles) > articlesLimit {
		articles = articles[:articlesLimit]
	}

	if articlesJSON {
		records := make([]domain.Record, len(articles))
		for i := range articles {
			records[i] = articles[i].ToRecord()
		}
		return writeJSON(cmd.OutOrStdout(), records)
	}

	if len(articles) == 0 {
		cmd.Println("No articles. Add some with 'feedcorpus ingest'.")
		return nil
	}

	t := newTable("ID", "PUBLISHED", "TITLE")
	for i := range articles {
		t.add(articles[i].ID(), articles[i].Published.Format("2006-01-02 15:04"), articles[i].Title)
	}
	t.render(cmd.OutOrStdout())
	cmd.Println(dimStyle.Render(fmt.Sprintf("%d articles", len(articles))))
	return nil
}

func runArticlesShow(cmd *cobra.Command, args []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	article, err := corpusService.Article(args[0])
	if err != nil {
		return fmt.Errorf("article %s: %w", args[0], err)
	}

	if showJSON {
		return writeJSON(cmd.OutOrStdout(), article.ToRecord())
	}

	cmd.Println(headerStyle.Render(article.Title))
	cmd.Printf("ID:        %s\n", article.ID())
	if article.Link != "" {
		cmd.Printf("Link:      %s\n", article.Link)
	}
	if article.Author != "" {
		cmd.Printf("Author:    %s\n", article.Author)
	}
	cmd.Printf("Published: %s\n", domain.FormatTimestamp(article.Published))
	cmd.Printf("Updated:   %s\n", domain.FormatTimestamp(article.Updated))
	cmd.Println()
	cmd.Println(article.Content)
	return nil
}

func runArticlesExport(cmd *cobra.Command, _ []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}
	if exportFormat != formatJSON && exportFormat != formatYAML {
		return fmt.Errorf("%w: unknown format %q", domain.ErrInvalidInput, exportFormat)
	}

	articles := corpusService.Articles()
	records := make([]domain.Record, len(articles))
	for i := range articles {
		records[i] = articles[i].ToRecord()
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOutput, err)
		}
		defer f.Close()
		w = f
	}

	if exportFormat == formatYAML {
		return writeYAML(w, records)
	}
	return writeJSON(w, records)
}
