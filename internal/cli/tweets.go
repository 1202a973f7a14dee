package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"skillcli/internal/config"
	"skillcli/internal/twitter"

	"github.com/spf13/cobra"
)

func newTweetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tweets",
		Short: "Fetch tweets from watched accounts",
	}
	cmd.AddCommand(newTweetsFetchCmd())
	cmd.AddCommand(newTweetsUserCmd())
	cmd.AddCommand(newTweetsAllCmd())
	cmd.AddCommand(newTweetsInfluencersCmd())
	return cmd
}

func newTweetsFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <url>...",
		Short: "Fetch individual tweets by URL",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fetcher := twitter.NewFetcher()
			out := cmd.OutOrStdout()

			var tweets []twitter.Tweet
			var failed int
			for _, url := range args {
				tweet, err := fetcher.FetchTweet(cmd.Context(), url)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", url, err)
					failed++
					continue
				}
				tweets = append(tweets, tweet)
			}

			data, err := json.MarshalIndent(tweets, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))

			if failed > 0 {
				return fmt.Errorf("%d of %d tweets failed", failed, len(args))
			}
			return nil
		},
	}
	return cmd
}

func newTweetsUserCmd() *cobra.Command {
	var linksFile string
	var count int
	var hours int
	var save bool

	cmd := &cobra.Command{
		Use:   "user <username> [url...]",
		Short: "Fetch a user's collected tweet links",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			dir, err := config.TweetsDir(cfg)
			if err != nil {
				return err
			}

			username := args[0]
			urls := args[1:]
			if len(urls) == 0 {
				if linksFile == "" {
					linksFile = twitter.LinksPath(dir, username)
				}
				// A user with no collected links yields an empty result.
				urls, err = twitter.ReadLinksFile(linksFile)
				if err != nil {
					return err
				}
			}
			if count > 0 && len(urls) > count {
				urls = urls[:count]
			}

			fetcher := twitter.NewFetcher()
			result := fetcher.FetchUser(cmd.Context(), username, urls, hours)

			out := cmd.OutOrStdout()
			if save {
				path, err := twitter.SaveResults(dir, []twitter.UserTweets{result}, username+"_tweets.json")
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Saved %d tweets (%d filtered, %d failed) to %s\n",
					result.TweetCount, result.FilteredCount, result.FailedCount, path)
				return nil
			}

			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&linksFile, "links-file", "", "JSON file of collected tweet URLs")
	cmd.Flags().IntVar(&count, "count", 10, "Maximum links to fetch per account (0 for all)")
	cmd.Flags().IntVar(&hours, "hours", 48, "Recency window in hours (0 disables)")
	cmd.Flags().BoolVar(&save, "save", false, "Write results to the tweets output directory")

	return cmd
}

func newTweetsAllCmd() *cobra.Command {
	var category string
	var count int
	var hours int

	cmd := &cobra.Command{
		Use:   "all",
		Short: "Fetch collected tweets for every watched account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			dir, err := config.TweetsDir(cfg)
			if err != nil {
				return err
			}

			influencers, err := loadRoster(cfg)
			if err != nil {
				return err
			}
			if category != "" {
				influencers = twitter.FilterByCategory(influencers, category)
			}
			if len(influencers) == 0 {
				return fmt.Errorf("no watched accounts matched")
			}

			fetcher := twitter.NewFetcher()
			out := cmd.OutOrStdout()

			var results []twitter.UserTweets
			started := time.Now()
			for i, inf := range influencers {
				urls, err := twitter.ReadLinksFile(twitter.LinksPath(dir, inf.Username))
				if err != nil {
					return err
				}
				if count > 0 && len(urls) > count {
					urls = urls[:count]
				}

				result := fetcher.FetchUser(cmd.Context(), inf.Username, urls, hours)
				result.Name = inf.Name
				result.Category = inf.Category
				result.Bio = inf.Bio
				results = append(results, result)

				fmt.Fprintf(out, "[%d/%d] @%s: %d tweets (%d filtered, %d failed)\n",
					i+1, len(influencers), inf.Username,
					result.TweetCount, result.FilteredCount, result.FailedCount)
			}

			path, err := twitter.SaveResults(dir, results, "")
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Saved results for %d accounts to %s in %s\n",
				len(results), path, time.Since(started).Round(time.Second))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only accounts in this roster category")
	cmd.Flags().IntVar(&count, "count", 10, "Maximum links to fetch per account (0 for all)")
	cmd.Flags().IntVar(&hours, "hours", 48, "Recency window in hours (0 disables)")

	return cmd
}

func newTweetsInfluencersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "influencers",
		Short: "List watched accounts from the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			influencers, err := loadRoster(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, inf := range influencers {
				fmt.Fprintf(out, "@%s\t%s\t%s\n", inf.Username, inf.Name, inf.Category)
			}
			fmt.Fprintf(out, "%d accounts\n", len(influencers))
			return nil
		},
	}
	return cmd
}

func loadRoster(cfg config.Config) ([]twitter.Influencer, error) {
	if cfg.Twitter.Influencers == "" {
		return nil, fmt.Errorf("twitter.influencers roster path is not configured")
	}
	return twitter.LoadInfluencers(cfg.Twitter.Influencers)
}
