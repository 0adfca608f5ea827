package cli

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
)

var feedsCmd = &cobra.Command{
	Use:   "feeds",
	Short: "Manage subscribed feeds",
	Long: `Manage the feeds fetched by 'feedcorpus ingest feeds' when it is run
without arguments.`,
}

var feedsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subscribed feeds",
	Args:  cobra.NoArgs,
	RunE:  runFeedsList,
}

var feedsAddCmd = &cobra.Command{
	Use:   "add [url]",
	Short: "Subscribe to a feed",
	Args:  cobra.ExactArgs(1),
	RunE:  runFeedsAdd,
}

var feedsRemoveCmd = &cobra.Command{
	Use:     "remove [url]",
	Aliases: []string{"rm"},
	Short:   "Unsubscribe from a feed",
	Args:    cobra.ExactArgs(1),
	RunE:    runFeedsRemove,
}

func init() {
	feedsCmd.AddCommand(feedsListCmd)
	feedsCmd.AddCommand(feedsAddCmd)
	feedsCmd.AddCommand(feedsRemoveCmd)
	rootCmd.AddCommand(feedsCmd)
}

func runFeedsList(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if len(settings.Ingest.Feeds) == 0 {
		cmd.Println("No feeds subscribed.")
		return nil
	}
	for _, feed := range settings.Ingest.Feeds {
		cmd.Println(feed)
	}
	return nil
}

func runFeedsAdd(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	u, err := url.Parse(args[0])
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q is not an http(s) URL", domain.ErrInvalidInput, args[0])
	}
	if err := settingsService.AddFeed(args[0]); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	cmd.Println(successStyle.Render("Subscribed to " + args[0]))
	return nil
}

func runFeedsRemove(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.RemoveFeed(args[0]); err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}
	cmd.Println("Unsubscribed from " + args[0])
	return nil
}
