package email

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSubjectFromBody(t *testing.T) {
	if got := SubjectFromBody("short body"); got != "short body" {
		t.Fatalf("short body changed: %q", got)
	}

	long := "this body is much longer than twenty characters"
	got := SubjectFromBody(long)
	if got != "this body is much lo..." {
		t.Fatalf("unexpected truncated subject: %q", got)
	}

	cjk := strings.Repeat("中", 25)
	got = SubjectFromBody(cjk)
	if got != strings.Repeat("中", 20)+"..." {
		t.Fatalf("multibyte truncation broke runes: %q", got)
	}
}

func TestBuildMessagePlain(t *testing.T) {
	msg, err := BuildMessage(ComposeInput{
		From:    "me@example.com",
		To:      []string{"you@example.com"},
		Subject: "Hello",
		Body:    "Hi there",
	})
	if err != nil {
		t.Fatalf("build message: %v", err)
	}

	text := string(msg)
	if !strings.Contains(text, "From: me@example.com\r\n") {
		t.Fatalf("missing From header:\n%s", text)
	}
	if !strings.Contains(text, "Subject: Hello\r\n") {
		t.Fatalf("missing Subject header:\n%s", text)
	}
	if !strings.Contains(text, "Content-Type: text/plain") {
		t.Fatalf("missing plain content type:\n%s", text)
	}
	if !strings.Contains(text, "Hi there") {
		t.Fatalf("missing body:\n%s", text)
	}
}

func TestBuildMessageHTML(t *testing.T) {
	msg, err := BuildMessage(ComposeInput{
		From:        "me@example.com",
		To:          []string{"me@example.com"},
		Subject:     "Digest",
		Body:        "<html><body><p>hi</p></body></html>",
		ContentType: ContentTypeHTML,
	})
	if err != nil {
		t.Fatalf("build message: %v", err)
	}
	if !strings.Contains(string(msg), "Content-Type: text/html") {
		t.Fatalf("missing html content type:\n%s", msg)
	}
}

func TestRecipientsIncludeBccWithoutHeader(t *testing.T) {
	in := ComposeInput{
		From:    "me@example.com",
		To:      []string{"you@example.com"},
		Cc:      []string{"cc@example.com"},
		Bcc:     []string{"hidden@example.com"},
		Subject: "Hello",
		Body:    "Hi there",
	}

	got := in.Recipients()
	want := []string{"you@example.com", "cc@example.com", "hidden@example.com"}
	if len(got) != len(want) {
		t.Fatalf("unexpected recipients: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("recipient %d: got %q, want %q", i, got[i], want[i])
		}
	}

	msg, err := BuildMessage(in)
	if err != nil {
		t.Fatalf("build message: %v", err)
	}
	if strings.Contains(string(msg), "hidden@example.com") {
		t.Fatalf("bcc recipient leaked into headers:\n%s", msg)
	}
}

func TestBuildMessageAutoSubject(t *testing.T) {
	msg, err := BuildMessage(ComposeInput{
		From: "me@example.com",
		To:   []string{"you@example.com"},
		Body: "quick note",
	})
	if err != nil {
		t.Fatalf("build message: %v", err)
	}
	if !strings.Contains(string(msg), "Subject: quick note\r\n") {
		t.Fatalf("expected subject derived from body:\n%s", msg)
	}
}

func TestBuildMessageRejectsUnknownContentType(t *testing.T) {
	_, err := BuildMessage(ComposeInput{
		From:        "me@example.com",
		To:          []string{"you@example.com"},
		Body:        "hi",
		ContentType: "application/json",
	})
	if err == nil {
		t.Fatalf("expected error for unsupported content type")
	}
}

func TestBuildMessageWithAttachment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("attachment data"), 0o600); err != nil {
		t.Fatalf("write attachment: %v", err)
	}

	msg, err := BuildMessage(ComposeInput{
		From:        "me@example.com",
		To:          []string{"you@example.com"},
		Subject:     "With file",
		Body:        "see attached",
		Attachments: []string{path},
	})
	if err != nil {
		t.Fatalf("build message: %v", err)
	}

	text := string(msg)
	if !strings.Contains(text, "multipart/mixed") {
		t.Fatalf("expected multipart message:\n%s", text)
	}
	if !strings.Contains(text, `filename="notes.txt"`) {
		t.Fatalf("missing attachment disposition:\n%s", text)
	}
	if !strings.Contains(text, "Content-Transfer-Encoding: base64") {
		t.Fatalf("attachment not base64 encoded:\n%s", text)
	}
}

func TestBuildMessageRequiresBody(t *testing.T) {
	_, err := BuildMessage(ComposeInput{
		From: "me@example.com",
		To:   []string{"you@example.com"},
	})
	if err == nil {
		t.Fatalf("expected error for empty body")
	}
}
