package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

var stopwordsSave bool

var stopwordsCmd = &cobra.Command{
	Use:   "stopwords",
	Short: "Manage the terms excluded from weighting",
}

var stopwordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the current stop words",
	Args:  cobra.NoArgs,
	RunE:  runStopwordsList,
}

var stopwordsAddCmd = &cobra.Command{
	Use:   "add [word...]",
	Short: "Add stop words",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStopwordsAdd,
}

var stopwordsAutodetectCmd = &cobra.Command{
	Use:   "autodetect",
	Short: "Detect uninformative terms and add them as stop words",
	Long: `Detect uninformative terms and add them as stop words. A term is
uninformative when it occurs in every article, occurs in fewer than two
articles, or is shorter than three characters.`,
	Args: cobra.NoArgs,
	RunE: runStopwordsAutodetect,
}

func init() {
	stopwordsAddCmd.Flags().BoolVar(&stopwordsSave, "save", false, "persist the stop words in the settings")
	stopwordsAutodetectCmd.Flags().BoolVar(&stopwordsSave, "save", false, "persist the stop words in the settings")

	stopwordsCmd.AddCommand(stopwordsListCmd)
	stopwordsCmd.AddCommand(stopwordsAddCmd)
	stopwordsCmd.AddCommand(stopwordsAutodetectCmd)
	rootCmd.AddCommand(stopwordsCmd)
}

func runStopwordsList(cmd *cobra.Command, _ []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	words := corpusService.StopWords()
	if len(words) == 0 {
		cmd.Println("No stop words.")
		return nil
	}
	for _, w := range words {
		cmd.Println(w)
	}
	return nil
}

func runStopwordsAdd(cmd *cobra.Command, args []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	words := make([]string, 0, len(args))
	for _, arg := range args {
		if w := strings.ToLower(strings.TrimSpace(arg)); w != "" {
			words = append(words, w)
		}
	}
	corpusService.AddStopWords(words...)
	cmd.Printf("Added %d stop words\n", len(words))

	if stopwordsSave {
		return saveStopWords(cmd)
	}
	return nil
}

func runStopwordsAutodetect(cmd *cobra.Command, _ []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	before := len(corpusService.StopWords())
	words := corpusService.AutodetectStopWords()
	cmd.Printf("Detected %d new stop words (%d total)\n", len(words)-before, len(words))

	if stopwordsSave {
		return saveStopWords(cmd)
	}
	return nil
}

// saveStopWords merges the corpus stop words into the persisted settings.
func saveStopWords(cmd *cobra.Command) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	merged := append(settings.Corpus.StopWords, corpusService.StopWords()...)
	slices.Sort(merged)
	settings.Corpus.StopWords = slices.Compact(merged)

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Println(successStyle.Render("Stop words saved"))
	return nil
}
