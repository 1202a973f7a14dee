package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "emails.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testEmail(messageID string, sent time.Time) Email {
	return Email{
		MessageID: messageID,
		UID:       1,
		Folder:    "INBOX",
		Subject:   "Subject for " + messageID,
		FromAddr:  "alice@example.com",
		ToAddr:    "bob@example.com",
		DateSent:  sql.NullTime{Time: sent, Valid: true},
		BodyPlain: "body text",
	}
}

func TestInsertEmailDeduplicates(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	sent := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	id, err := s.InsertEmail(ctx, testEmail("<a@example.com>", sent), nil)
	if err != nil {
		t.Fatalf("insert email: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected non-zero row id")
	}

	_, err = s.InsertEmail(ctx, testEmail("<a@example.com>", sent), nil)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestInsertEmailRequiresMessageID(t *testing.T) {
	s := testStore(t)

	e := testEmail("", time.Now())
	if _, err := s.InsertEmail(context.Background(), e, nil); !errors.Is(err, ErrMissingMessageID) {
		t.Fatalf("expected ErrMissingMessageID, got %v", err)
	}
}

func TestInsertEmailStoresAttachments(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	attachments := []Attachment{
		{Filename: "a.pdf", Size: 100, ContentType: "application/pdf"},
		{Filename: "b.png", Size: 200, ContentType: "image/png"},
	}
	id, err := s.InsertEmail(ctx, testEmail("<att@example.com>", time.Now()), attachments)
	if err != nil {
		t.Fatalf("insert email: %v", err)
	}

	stored, err := s.Attachments(ctx, id)
	if err != nil {
		t.Fatalf("list attachments: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 attachments, got %d", len(stored))
	}
	if stored[0].Filename != "a.pdf" || stored[1].Filename != "b.png" {
		t.Fatalf("unexpected attachments: %+v", stored)
	}
}

func TestSetClassification(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if _, err := s.InsertEmail(ctx, testEmail("<c@example.com>", time.Now()), nil); err != nil {
		t.Fatalf("insert email: %v", err)
	}

	if err := s.SetClassification(ctx, "<c@example.com>", CategoryTask, UrgencyUrgent); err != nil {
		t.Fatalf("set classification: %v", err)
	}

	emails, err := s.UrgentClassified(ctx)
	if err != nil {
		t.Fatalf("list urgent: %v", err)
	}
	if len(emails) != 1 {
		t.Fatalf("expected 1 urgent email, got %d", len(emails))
	}
	if emails[0].Category != CategoryTask || !emails[0].Processed {
		t.Fatalf("unexpected classified row: %+v", emails[0])
	}

	if err := s.SetClassification(ctx, "<missing@example.com>", CategoryTask, UrgencyNormal); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUnclassifiedExcludesProcessed(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"<u1@x>", "<u2@x>", "<u3@x>"} {
		if _, err := s.InsertEmail(ctx, testEmail(id, base.Add(time.Duration(i)*time.Hour)), nil); err != nil {
			t.Fatalf("insert email: %v", err)
		}
	}
	if err := s.SetClassification(ctx, "<u2@x>", CategoryNotification, UrgencyNormal); err != nil {
		t.Fatalf("set classification: %v", err)
	}

	emails, err := s.Unclassified(ctx, 0)
	if err != nil {
		t.Fatalf("list unclassified: %v", err)
	}
	if len(emails) != 2 {
		t.Fatalf("expected 2 unclassified, got %d", len(emails))
	}
	// Newest first.
	if emails[0].MessageID != "<u3@x>" || emails[1].MessageID != "<u1@x>" {
		t.Fatalf("unexpected order: %q, %q", emails[0].MessageID, emails[1].MessageID)
	}
}

func TestListEmailsFilters(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"<f1@x>", "<f2@x>", "<f3@x>"} {
		if _, err := s.InsertEmail(ctx, testEmail(id, base.Add(time.Duration(i)*time.Hour)), nil); err != nil {
			t.Fatalf("insert email: %v", err)
		}
	}
	if err := s.SetClassification(ctx, "<f1@x>", CategoryTask, UrgencyUrgent); err != nil {
		t.Fatalf("set classification: %v", err)
	}
	if err := s.SetClassification(ctx, "<f2@x>", CategoryNotification, UrgencyNormal); err != nil {
		t.Fatalf("set classification: %v", err)
	}

	tasks, err := s.ListEmails(ctx, Filter{Category: CategoryTask})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].MessageID != "<f1@x>" {
		t.Fatalf("unexpected task filter result: %+v", tasks)
	}

	all, err := s.ListEmails(ctx, Filter{Limit: 2})
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected limit 2, got %d", len(all))
	}
}

func TestGetStats(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"<s1@x>", "<s2@x>", "<s3@x>"} {
		if _, err := s.InsertEmail(ctx, testEmail(id, base.Add(time.Duration(i)*time.Hour)), nil); err != nil {
			t.Fatalf("insert email: %v", err)
		}
	}
	if err := s.SetClassification(ctx, "<s1@x>", CategoryTask, UrgencyUrgent); err != nil {
		t.Fatalf("set classification: %v", err)
	}
	if err := s.SetClassification(ctx, "<s2@x>", CategoryNotification, UrgencyNormal); err != nil {
		t.Fatalf("set classification: %v", err)
	}

	stats, err := s.GetStats(ctx)
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if stats.Total != 3 || stats.Processed != 2 || stats.Unprocessed != 1 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.ByCategory[CategoryTask] != 1 || stats.ByCategory[CategoryNotification] != 1 {
		t.Fatalf("unexpected category buckets: %v", stats.ByCategory)
	}
	if stats.ByUrgency[UrgencyUrgent] != 1 {
		t.Fatalf("unexpected urgency buckets: %v", stats.ByUrgency)
	}
}

func TestTouchEmails(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.InsertEmail(ctx, testEmail("<t1@x>", time.Now()), nil)
	if err != nil {
		t.Fatalf("insert email: %v", err)
	}

	if err := s.TouchEmails(ctx, []int64{id}); err != nil {
		t.Fatalf("touch emails: %v", err)
	}
	if err := s.TouchEmails(ctx, nil); err != nil {
		t.Fatalf("touch with empty ids: %v", err)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emails.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	s.Close()
}
