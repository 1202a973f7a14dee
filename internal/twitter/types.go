package twitter

import "time"

const (
	SourceFxTwitter   = "fxtwitter"
	SourceSyndication = "syndication"

	TypeTweet   = "tweet"
	TypeArticle = "article"
)

// Tweet is one fetched post, normalized across sources.
type Tweet struct {
	URL       string   `json:"url"`
	TweetID   string   `json:"tweet_id"`
	Source    string   `json:"source"`
	Type      string   `json:"type"`
	Text      string   `json:"text,omitempty"`
	Title     string   `json:"title,omitempty"`
	Author    string   `json:"author"`
	Username  string   `json:"username"`
	CreatedAt string   `json:"created_at"`
	Age       string   `json:"age,omitempty"`
	Likes     int      `json:"likes"`
	Retweets  int      `json:"retweets"`
	Replies   int      `json:"replies,omitempty"`
	Views     int      `json:"views,omitempty"`
	Media     []string `json:"media,omitempty"`
}

// UserTweets is the per-user fetch result written to disk.
type UserTweets struct {
	Username      string    `json:"username"`
	Name          string    `json:"name,omitempty"`
	Category      string    `json:"category,omitempty"`
	Bio           string    `json:"bio,omitempty"`
	FetchedAt     time.Time `json:"fetched_at"`
	HoursWindow   int       `json:"hours_window"`
	TweetCount    int       `json:"tweet_count"`
	FilteredCount int       `json:"filtered_count"`
	FailedCount   int       `json:"failed_count"`
	Tweets        []Tweet   `json:"tweets"`
}
