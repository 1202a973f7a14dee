package twitter

import "testing"

func TestRenderArticleBlocks(t *testing.T) {
	blocks := []articleBlock{
		{Type: "header-one", Text: "The Title"},
		{Type: "unstyled", Text: "Opening paragraph."},
		{Type: "header-two", Text: "Section"},
		{Type: "blockquote", Text: "A quote."},
		{Type: "unordered-list-item", Text: "first"},
		{Type: "ordered-list-item", Text: "second"},
		{Type: "unstyled", Text: "   "},
	}

	got := RenderArticleBlocks(blocks)
	want := "# The Title\n\nOpening paragraph.\n\n## Section\n\n> A quote.\n\n- first\n\n1. second"
	if got != want {
		t.Fatalf("unexpected markdown:\n%s", got)
	}
}

func TestRenderArticleBlocksEmpty(t *testing.T) {
	if got := RenderArticleBlocks(nil); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
