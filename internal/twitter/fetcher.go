package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	fetchAttempts = 3
	fetchDelay    = time.Second
)

// tweetSource resolves one post URL. Both proxy clients implement it.
type tweetSource interface {
	Fetch(ctx context.Context, url string) (Tweet, error)
}

type syndicationSource interface {
	Fetch(ctx context.Context, url, tweetID string) (Tweet, error)
}

// Fetcher resolves posts through fxtwitter with the syndication API as a
// fallback, and applies the recency window.
type Fetcher struct {
	primary  tweetSource
	fallback syndicationSource
	now      func() time.Time
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		primary:  NewFxTwitterClient(),
		fallback: NewSyndicationClient(),
		now:      time.Now,
	}
}

// FetchTweet resolves one post URL, retrying the primary source on
// transient failures before falling back.
func (f *Fetcher) FetchTweet(ctx context.Context, url string) (Tweet, error) {
	tweetID, err := ExtractTweetID(url)
	if err != nil {
		return Tweet{}, err
	}

	tweet, primaryErr := retry.DoWithData(
		func() (Tweet, error) {
			return f.primary.Fetch(ctx, url)
		},
		retry.Attempts(fetchAttempts),
		retry.Delay(fetchDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if primaryErr == nil {
		return tweet, nil
	}

	tweet, fallbackErr := f.fallback.Fetch(ctx, url, tweetID)
	if fallbackErr != nil {
		return Tweet{}, fmt.Errorf("all sources failed for %s: %w (fxtwitter: %v)", url, fallbackErr, primaryErr)
	}

	return tweet, nil
}

// FetchUser resolves a user's collected post links, filters them by the
// recency window, and annotates ages.
func (f *Fetcher) FetchUser(ctx context.Context, username string, urls []string, hours int) UserTweets {
	result := UserTweets{
		Username:    username,
		FetchedAt:   f.now(),
		HoursWindow: hours,
		Tweets:      []Tweet{},
	}

	now := f.now()
	for _, url := range urls {
		tweet, err := f.FetchTweet(ctx, url)
		if err != nil {
			result.FailedCount++
			continue
		}

		if !WithinWindow(tweet.CreatedAt, hours, now) {
			result.FilteredCount++
			continue
		}

		tweet.Age = FormatAge(tweet.CreatedAt, now)
		result.Tweets = append(result.Tweets, tweet)
	}

	result.TweetCount = len(result.Tweets)
	return result
}

// ReadLinksFile reads a JSON array of collected post URLs. A missing file
// yields an empty list.
func ReadLinksFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading links file: %w", err)
	}

	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil {
		return nil, fmt.Errorf("parsing links file %s: %w", path, err)
	}

	return urls, nil
}

// LinksPath is the conventional per-user links file location under the
// tweets data dir.
func LinksPath(dir, username string) string {
	return filepath.Join(dir, "links", username+".json")
}

// SaveResults writes fetch results as indented JSON under dir and returns
// the file path. An empty filename picks a timestamped name.
func SaveResults(dir string, results []UserTweets, filename string) (string, error) {
	if filename == "" {
		filename = fmt.Sprintf("tweets_%s.json", time.Now().Format("20060102_150405"))
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding tweet results: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing tweet results: %w", err)
	}

	return path, nil
}
