package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	fxTwitterTimeout = 15 * time.Second
	browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
)

var fxHostPattern = regexp.MustCompile(`(x\.com|twitter\.com)`)

// FxTwitterClient fetches posts through the fxtwitter rendering proxy,
// which also exposes full X Article content.
type FxTwitterClient struct {
	client *http.Client
	// rewriteHost overrides the api.fxtwitter.com substitution in tests.
	rewriteHost string
}

func NewFxTwitterClient() *FxTwitterClient {
	return &FxTwitterClient{
		client:      &http.Client{Timeout: fxTwitterTimeout},
		rewriteHost: "api.fxtwitter.com",
	}
}

type fxResponse struct {
	Tweet *fxTweet `json:"tweet"`
}

type fxTweet struct {
	Text      string     `json:"text"`
	CreatedAt string     `json:"created_at"`
	Likes     int        `json:"likes"`
	Retweets  int        `json:"retweets"`
	Replies   int        `json:"replies"`
	Views     int        `json:"views"`
	Author    fxAuthor   `json:"author"`
	Media     *fxMedia   `json:"media"`
	Article   *fxArticle `json:"article"`
}

type fxAuthor struct {
	Name       string `json:"name"`
	ScreenName string `json:"screen_name"`
}

type fxMedia struct {
	All []struct {
		URL string `json:"url"`
	} `json:"all"`
}

type fxArticle struct {
	Title       string `json:"title"`
	PreviewText string `json:"preview_text"`
	CreatedAt   string `json:"created_at"`
	Content     struct {
		Blocks []articleBlock `json:"blocks"`
	} `json:"content"`
}

// Fetch resolves a post URL through fxtwitter.
func (c *FxTwitterClient) Fetch(ctx context.Context, url string) (Tweet, error) {
	apiURL := fxHostPattern.ReplaceAllString(url, c.rewriteHost)
	if !strings.Contains(apiURL, c.rewriteHost) {
		return Tweet{}, fmt.Errorf("not a tweet url: %q", url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return Tweet{}, fmt.Errorf("building fxtwitter request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return Tweet{}, fmt.Errorf("calling fxtwitter: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		return Tweet{}, fmt.Errorf("fxtwitter returned %s", resp.Status)
	}

	var out fxResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Tweet{}, fmt.Errorf("decoding fxtwitter response: %w", err)
	}
	if out.Tweet == nil {
		return Tweet{}, fmt.Errorf("fxtwitter returned no tweet for %q", url)
	}

	return fxToTweet(url, out.Tweet), nil
}

func fxToTweet(url string, t *fxTweet) Tweet {
	tweet := Tweet{
		URL:       url,
		Source:    SourceFxTwitter,
		Type:      TypeTweet,
		Text:      t.Text,
		Author:    t.Author.Name,
		Username:  t.Author.ScreenName,
		CreatedAt: t.CreatedAt,
		Likes:     t.Likes,
		Retweets:  t.Retweets,
		Replies:   t.Replies,
		Views:     t.Views,
	}

	if id, err := ExtractTweetID(url); err == nil {
		tweet.TweetID = id
	}

	if t.Media != nil {
		for _, m := range t.Media.All {
			if m.URL != "" {
				tweet.Media = append(tweet.Media, m.URL)
			}
		}
	}

	if t.Article != nil {
		tweet.Type = TypeArticle
		tweet.Title = t.Article.Title
		tweet.Text = RenderArticleBlocks(t.Article.Content.Blocks)
		if tweet.Text == "" {
			tweet.Text = t.Article.PreviewText
		}
		if t.Article.CreatedAt != "" {
			tweet.CreatedAt = t.Article.CreatedAt
		}
	}

	return tweet
}
