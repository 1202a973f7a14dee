package summary

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"skillcli/internal/store"
)

func digestEmail(id int64, subject, category, urgency string) store.Email {
	return store.Email{
		ID:       id,
		Subject:  subject,
		FromAddr: "sender@example.com",
		Category: category,
		Urgency:  urgency,
		DateSent: sql.NullTime{Time: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), Valid: true},
	}
}

func TestBuildGroupsByCategory(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	emails := []store.Email{
		digestEmail(1, "Fix the deploy", store.CategoryTask, store.UrgencyUrgent),
		digestEmail(2, "Weekly report", store.CategoryNotification, store.UrgencyNormal),
		digestEmail(3, "Uncategorized thing", "", ""),
	}

	digest, err := Build(emails, now)
	if err != nil {
		t.Fatalf("build digest: %v", err)
	}

	if digest.Count != 3 {
		t.Fatalf("unexpected count: %d", digest.Count)
	}
	if digest.Subject != "Email digest - 2024-03-01 12:30" {
		t.Fatalf("unexpected subject: %q", digest.Subject)
	}
	if len(digest.IDs) != 3 {
		t.Fatalf("expected 3 ids, got %v", digest.IDs)
	}

	html := digest.HTML
	for _, want := range []string{
		"Tasks (1)",
		"Notifications (1)",
		"Other (1)",
		"Fix the deploy",
		"Weekly report",
		"[!] URGENT",
		"Generated: 2024-03-01 12:30:00",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("digest missing %q:\n%s", want, html)
		}
	}
}

func TestBuildOmitsEmptySections(t *testing.T) {
	now := time.Now()
	emails := []store.Email{
		digestEmail(1, "Only a task", store.CategoryTask, store.UrgencyNormal),
	}

	digest, err := Build(emails, now)
	if err != nil {
		t.Fatalf("build digest: %v", err)
	}

	if strings.Contains(digest.HTML, "Notifications") {
		t.Fatalf("empty notifications section rendered:\n%s", digest.HTML)
	}
	if strings.Contains(digest.HTML, "Other") {
		t.Fatalf("empty other section rendered:\n%s", digest.HTML)
	}
}

func TestBuildEscapesHTML(t *testing.T) {
	emails := []store.Email{
		digestEmail(1, "<script>alert(1)</script>", store.CategoryTask, store.UrgencyNormal),
	}

	digest, err := Build(emails, time.Now())
	if err != nil {
		t.Fatalf("build digest: %v", err)
	}
	if strings.Contains(digest.HTML, "<script>") {
		t.Fatalf("subject not escaped:\n%s", digest.HTML)
	}
}

func TestBuildTruncatesLongFields(t *testing.T) {
	long := strings.Repeat("s", 80)
	emails := []store.Email{
		digestEmail(1, long, store.CategoryTask, store.UrgencyNormal),
	}

	digest, err := Build(emails, time.Now())
	if err != nil {
		t.Fatalf("build digest: %v", err)
	}
	if strings.Contains(digest.HTML, long) {
		t.Fatalf("long subject not truncated")
	}
	if !strings.Contains(digest.HTML, strings.Repeat("s", 47)+"...") {
		t.Fatalf("truncated subject missing:\n%s", digest.HTML)
	}
}
