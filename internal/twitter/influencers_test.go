package twitter

import (
	"os"
	"path/filepath"
	"testing"
)

const rosterJSON = `{
	"ai_influencers": [
		{
			"category": "researchers",
			"users": [
				{"username": "alice_ai", "name": "Alice", "bio": "ML researcher", "url": "https://x.com/alice_ai"},
				{"username": "", "name": "Nameless"}
			]
		},
		{
			"category": "builders",
			"users": [
				{"username": "bob_builds", "name": "Bob", "bio": "Ships things", "url": "https://x.com/bob_builds"}
			]
		}
	]
}`

func TestLoadInfluencers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.json")
	if err := os.WriteFile(path, []byte(rosterJSON), 0o600); err != nil {
		t.Fatalf("write roster: %v", err)
	}

	influencers, err := LoadInfluencers(path)
	if err != nil {
		t.Fatalf("load influencers: %v", err)
	}
	if len(influencers) != 2 {
		t.Fatalf("expected 2 influencers (empty username skipped), got %d", len(influencers))
	}
	if influencers[0].Username != "alice_ai" || influencers[0].Category != "researchers" {
		t.Fatalf("unexpected first influencer: %+v", influencers[0])
	}
	if influencers[1].Username != "bob_builds" || influencers[1].Category != "builders" {
		t.Fatalf("unexpected second influencer: %+v", influencers[1])
	}
}

func TestLoadInfluencersMissingFile(t *testing.T) {
	if _, err := LoadInfluencers(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("expected error for missing roster")
	}
}

func TestFilterByCategory(t *testing.T) {
	influencers := []Influencer{
		{Username: "a", Category: "researchers"},
		{Username: "b", Category: "builders"},
		{Username: "c", Category: "researchers"},
	}

	got := FilterByCategory(influencers, "researchers")
	if len(got) != 2 {
		t.Fatalf("expected 2 researchers, got %d", len(got))
	}

	if got := FilterByCategory(influencers, "nobody"); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}
