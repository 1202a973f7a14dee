package twitter

import "testing"

func TestExtractTweetID(t *testing.T) {
	cases := []struct {
		url string
		id  string
	}{
		{"https://x.com/someuser/status/1234567890", "1234567890"},
		{"https://twitter.com/someuser/status/42", "42"},
		{"https://x.com/someuser/statuses/99", "99"},
		{"https://x.com/someuser/status/1234567890?s=20", "1234567890"},
	}

	for _, tc := range cases {
		id, err := ExtractTweetID(tc.url)
		if err != nil {
			t.Fatalf("%s: %v", tc.url, err)
		}
		if id != tc.id {
			t.Fatalf("%s: expected %q, got %q", tc.url, tc.id, id)
		}
	}
}

func TestExtractTweetIDRejectsOtherURLs(t *testing.T) {
	for _, url := range []string{
		"https://example.com/status/123",
		"https://x.com/someuser",
		"not a url",
		"",
	} {
		if _, err := ExtractTweetID(url); err == nil {
			t.Fatalf("expected error for %q", url)
		}
	}
}
