package twitter

import "strings"

type articleBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// RenderArticleBlocks flattens X Article content blocks into markdown.
func RenderArticleBlocks(blocks []articleBlock) string {
	paragraphs := make([]string, 0, len(blocks))

	for _, block := range blocks {
		text := strings.TrimSpace(block.Text)
		if text == "" {
			continue
		}

		switch block.Type {
		case "header-one":
			paragraphs = append(paragraphs, "# "+text)
		case "header-two":
			paragraphs = append(paragraphs, "## "+text)
		case "header-three":
			paragraphs = append(paragraphs, "### "+text)
		case "blockquote":
			paragraphs = append(paragraphs, "> "+text)
		case "unordered-list-item":
			paragraphs = append(paragraphs, "- "+text)
		case "ordered-list-item":
			paragraphs = append(paragraphs, "1. "+text)
		default:
			paragraphs = append(paragraphs, text)
		}
	}

	return strings.Join(paragraphs, "\n\n")
}
