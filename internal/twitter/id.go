package twitter

import (
	"fmt"
	"regexp"
)

var tweetIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:x\.com|twitter\.com)/\w+/status/(\d+)`),
	regexp.MustCompile(`(?:x\.com|twitter\.com)/\w+/statuses/(\d+)`),
}

// ExtractTweetID pulls the numeric status id out of an x.com or
// twitter.com post URL.
func ExtractTweetID(url string) (string, error) {
	for _, pattern := range tweetIDPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("no tweet id in url %q", url)
}
