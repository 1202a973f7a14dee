package twitter

import (
	"encoding/json"
	"fmt"
	"os"
)

// Influencer is one watched account from the roster file.
type Influencer struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

type rosterFile struct {
	Categories []struct {
		Category string `json:"category"`
		Users    []struct {
			Username string `json:"username"`
			Name     string `json:"name"`
			Bio      string `json:"bio"`
			URL      string `json:"url"`
		} `json:"users"`
	} `json:"ai_influencers"`
}

// LoadInfluencers reads the roster JSON file and flattens it to one
// Influencer per user, carrying the category name down.
func LoadInfluencers(path string) ([]Influencer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading influencer roster: %w", err)
	}

	var roster rosterFile
	if err := json.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("parsing influencer roster %s: %w", path, err)
	}

	var out []Influencer
	for _, cat := range roster.Categories {
		for _, user := range cat.Users {
			if user.Username == "" {
				continue
			}
			out = append(out, Influencer{
				Username: user.Username,
				Name:     user.Name,
				Bio:      user.Bio,
				URL:      user.URL,
				Category: cat.Category,
			})
		}
	}

	return out, nil
}

// FilterByCategory keeps only influencers of the named category. An empty
// category keeps everything.
func FilterByCategory(influencers []Influencer, category string) []Influencer {
	if category == "" {
		return influencers
	}
	var out []Influencer
	for _, inf := range influencers {
		if inf.Category == category {
			out = append(out, inf)
		}
	}
	return out
}
