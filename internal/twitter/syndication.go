package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const syndicationTimeout = 10 * time.Second

// SyndicationClient fetches posts through the public embed rendering API.
// It has no article support and is the fallback source.
type SyndicationClient struct {
	client  *http.Client
	baseURL string
}

func NewSyndicationClient() *SyndicationClient {
	return &SyndicationClient{
		client:  &http.Client{Timeout: syndicationTimeout},
		baseURL: "https://cdn.syndication.twimg.com",
	}
}

type syndicationResponse struct {
	Text string `json:"text"`
	User struct {
		Name       string `json:"name"`
		ScreenName string `json:"screen_name"`
	} `json:"user"`
	CreatedAt     string `json:"created_at"`
	FavoriteCount int    `json:"favorite_count"`
	RetweetCount  int    `json:"retweet_count"`
	MediaDetails  []struct {
		MediaURLHTTPS string `json:"media_url_https"`
	} `json:"mediaDetails"`
}

// Fetch resolves a post by id through the syndication API.
func (c *SyndicationClient) Fetch(ctx context.Context, url, tweetID string) (Tweet, error) {
	endpoint := fmt.Sprintf("%s/tweet-result?id=%s&token=0", c.baseURL, tweetID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Tweet{}, fmt.Errorf("building syndication request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return Tweet{}, fmt.Errorf("calling syndication api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Tweet{}, fmt.Errorf("syndication api returned %s", resp.Status)
	}

	var out syndicationResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Tweet{}, fmt.Errorf("decoding syndication response: %w", err)
	}
	if out.Text == "" {
		return Tweet{}, fmt.Errorf("syndication api returned no text for tweet %s", tweetID)
	}

	tweet := Tweet{
		URL:       url,
		TweetID:   tweetID,
		Source:    SourceSyndication,
		Type:      TypeTweet,
		Text:      out.Text,
		Author:    out.User.Name,
		Username:  out.User.ScreenName,
		CreatedAt: out.CreatedAt,
		Likes:     out.FavoriteCount,
		Retweets:  out.RetweetCount,
	}
	for _, m := range out.MediaDetails {
		if m.MediaURLHTTPS != "" {
			tweet.Media = append(tweet.Media, m.MediaURLHTTPS)
		}
	}

	return tweet, nil
}
