package twitter

import (
	"fmt"
	"time"
)

// twitterTimeLayout is the classic API format, e.g.
// "Mon Feb 19 16:08:33 +0000 2026".
const twitterTimeLayout = "Mon Jan 2 15:04:05 -0700 2006"

// ParseCreatedAt parses the date formats the rendering proxies return.
func ParseCreatedAt(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty created_at")
	}

	if t, err := time.Parse(twitterTimeLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unparsable created_at %q", value)
}

// WithinWindow reports whether a post is at most the given hours old.
// Zero hours disables the filter, and an unparsable date keeps the post.
func WithinWindow(createdAt string, hours int, now time.Time) bool {
	if hours <= 0 {
		return true
	}

	t, err := ParseCreatedAt(createdAt)
	if err != nil {
		return true
	}

	cutoff := now.Add(-time.Duration(hours) * time.Hour)
	return !t.Before(cutoff)
}

// FormatAge renders a post date as a human age relative to now.
func FormatAge(createdAt string, now time.Time) string {
	t, err := ParseCreatedAt(createdAt)
	if err != nil {
		return "unknown age"
	}

	delta := now.Sub(t)
	hours := delta.Hours()
	switch {
	case hours < 1:
		return fmt.Sprintf("%dm ago", int(delta.Minutes()))
	case hours < 24:
		return fmt.Sprintf("%dh ago", int(hours))
	default:
		return fmt.Sprintf("%dd ago", int(hours/24))
	}
}
