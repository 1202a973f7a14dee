package twitter

import (
	"testing"
	"time"
)

func TestParseCreatedAt(t *testing.T) {
	got, err := ParseCreatedAt("Mon Feb 19 16:08:33 +0000 2024")
	if err != nil {
		t.Fatalf("parse twitter layout: %v", err)
	}
	if got.Year() != 2024 || got.Month() != time.February || got.Day() != 19 {
		t.Fatalf("unexpected time: %v", got)
	}

	got, err = ParseCreatedAt("2024-02-19T16:08:33Z")
	if err != nil {
		t.Fatalf("parse rfc3339: %v", err)
	}
	if got.Hour() != 16 {
		t.Fatalf("unexpected time: %v", got)
	}

	if _, err := ParseCreatedAt("yesterday"); err == nil {
		t.Fatalf("expected error for unparsable date")
	}
	if _, err := ParseCreatedAt(""); err == nil {
		t.Fatalf("expected error for empty date")
	}
}

func TestWithinWindow(t *testing.T) {
	now := time.Date(2024, 2, 20, 12, 0, 0, 0, time.UTC)

	recent := now.Add(-12 * time.Hour).Format(time.RFC3339)
	old := now.Add(-72 * time.Hour).Format(time.RFC3339)

	if !WithinWindow(recent, 48, now) {
		t.Fatalf("recent post rejected")
	}
	if WithinWindow(old, 48, now) {
		t.Fatalf("old post accepted")
	}
	if !WithinWindow(old, 0, now) {
		t.Fatalf("zero hours should disable the filter")
	}
	if !WithinWindow("unparsable", 48, now) {
		t.Fatalf("unparsable date should keep the post")
	}
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2024, 2, 20, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		created string
		want    string
	}{
		{now.Add(-30 * time.Minute).Format(time.RFC3339), "30m ago"},
		{now.Add(-5 * time.Hour).Format(time.RFC3339), "5h ago"},
		{now.Add(-49 * time.Hour).Format(time.RFC3339), "2d ago"},
		{"unparsable", "unknown age"},
	}

	for _, tc := range cases {
		if got := FormatAge(tc.created, now); got != tc.want {
			t.Fatalf("FormatAge(%q) = %q, want %q", tc.created, got, tc.want)
		}
	}
}
