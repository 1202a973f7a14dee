package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	CategoryTask         = "task"
	CategoryNotification = "notification"

	UrgencyUrgent = "urgent"
	UrgencyNormal = "normal"
)

var (
	// ErrDuplicate marks an insert of an already-stored Message-ID.
	ErrDuplicate = errors.New("email already stored")
	// ErrMissingMessageID marks a message that cannot be deduplicated.
	ErrMissingMessageID = errors.New("email has no message id")
	// ErrNotFound marks a lookup or update that matched no row.
	ErrNotFound = errors.New("email not found")
)

// Email is a stored email row.
type Email struct {
	ID             int64        `db:"id"`
	MessageID      string       `db:"message_id"`
	UID            int64        `db:"uid"`
	Folder         string       `db:"folder"`
	Subject        string       `db:"subject"`
	FromAddr       string       `db:"from_addr"`
	ToAddr         string       `db:"to_addr"`
	CcAddr         string       `db:"cc_addr"`
	DateSent       sql.NullTime `db:"date_sent"`
	BodyPlain      string       `db:"body_plain"`
	BodyHTML       string       `db:"body_html"`
	HasAttachments bool         `db:"has_attachments"`
	Processed      bool         `db:"processed"`
	Category       string       `db:"category"`
	Urgency        string       `db:"urgency"`
	CreatedAt      time.Time    `db:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at"`
}

// Attachment is a stored attachment row.
type Attachment struct {
	ID          int64  `db:"id"`
	EmailID     int64  `db:"email_id"`
	Filename    string `db:"filename"`
	Size        int64  `db:"size"`
	ContentType string `db:"content_type"`
}

// Filter narrows ListEmails results.
type Filter struct {
	Category string
	Urgency  string
	Limit    int
}

// Stats summarizes the store contents.
type Stats struct {
	Total        int
	Processed    int
	Unprocessed  int
	ByCategory   map[string]int
	ByUrgency    map[string]int
	LatestMailAt sql.NullTime
}

// InsertEmail stores a new email with its attachments. A message whose
// Message-ID is already stored returns ErrDuplicate; a message without a
// Message-ID returns ErrMissingMessageID. Returns the new row id.
func (s *Store) InsertEmail(ctx context.Context, e Email, attachments []Attachment) (int64, error) {
	if strings.TrimSpace(e.MessageID) == "" {
		return 0, ErrMissingMessageID
	}

	var exists int
	err := s.db.GetContext(ctx, &exists, "SELECT COUNT(*) FROM emails WHERE message_id = ?", e.MessageID)
	if err != nil {
		return 0, fmt.Errorf("checking message id: %w", err)
	}
	if exists > 0 {
		return 0, ErrDuplicate
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO emails (
			message_id, uid, folder, subject, from_addr, to_addr, cc_addr,
			date_sent, body_plain, body_html, has_attachments
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.MessageID, e.UID, e.Folder, e.Subject, e.FromAddr, e.ToAddr, e.CcAddr,
		e.DateSent, e.BodyPlain, e.BodyHTML, e.HasAttachments,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting email %s: %w", e.MessageID, err)
	}

	emailID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading insert id: %w", err)
	}

	for _, att := range attachments {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO attachments (email_id, filename, size, content_type)
			VALUES (?, ?, ?, ?)`,
			emailID, att.Filename, att.Size, att.ContentType,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting attachment %s: %w", att.Filename, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing insert: %w", err)
	}

	return emailID, nil
}

// SetClassification records the triage labels for a message and marks it
// processed.
func (s *Store) SetClassification(ctx context.Context, messageID, category, urgency string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE emails
		SET category = ?, urgency = ?, processed = 1, updated_at = CURRENT_TIMESTAMP
		WHERE message_id = ?`,
		category, urgency, messageID,
	)
	if err != nil {
		return fmt.Errorf("updating classification for %s: %w", messageID, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// Unclassified returns unprocessed emails, newest first.
func (s *Store) Unclassified(ctx context.Context, limit int) ([]Email, error) {
	if limit <= 0 {
		limit = 50
	}

	var emails []Email
	err := s.db.SelectContext(ctx, &emails, `
		SELECT * FROM emails
		WHERE processed = 0
		ORDER BY date_sent DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing unclassified emails: %w", err)
	}

	return emails, nil
}

// UrgentClassified returns processed emails triaged urgent, newest first.
func (s *Store) UrgentClassified(ctx context.Context) ([]Email, error) {
	var emails []Email
	err := s.db.SelectContext(ctx, &emails, `
		SELECT * FROM emails
		WHERE processed = 1 AND urgency = ?
		ORDER BY date_sent DESC`, UrgencyUrgent)
	if err != nil {
		return nil, fmt.Errorf("listing urgent emails: %w", err)
	}

	return emails, nil
}

// RecentClassified returns the most recently processed emails.
func (s *Store) RecentClassified(ctx context.Context, limit int) ([]Email, error) {
	if limit <= 0 {
		limit = 20
	}

	var emails []Email
	err := s.db.SelectContext(ctx, &emails, `
		SELECT * FROM emails
		WHERE processed = 1
		ORDER BY date_sent DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing classified emails: %w", err)
	}

	return emails, nil
}

// ListEmails returns emails matching the filter, newest first.
func (s *Store) ListEmails(ctx context.Context, f Filter) ([]Email, error) {
	var conditions []string
	var args []interface{}

	if f.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, f.Category)
	}
	if f.Urgency != "" {
		conditions = append(conditions, "urgency = ?")
		args = append(args, f.Urgency)
	}

	query := "SELECT * FROM emails"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date_sent DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	var emails []Email
	if err := s.db.SelectContext(ctx, &emails, query, args...); err != nil {
		return nil, fmt.Errorf("listing emails: %w", err)
	}

	return emails, nil
}

// Attachments returns the stored attachment rows of an email.
func (s *Store) Attachments(ctx context.Context, emailID int64) ([]Attachment, error) {
	var attachments []Attachment
	err := s.db.SelectContext(ctx, &attachments,
		"SELECT * FROM attachments WHERE email_id = ?", emailID)
	if err != nil {
		return nil, fmt.Errorf("listing attachments for email %d: %w", emailID, err)
	}

	return attachments, nil
}

// TouchEmails bumps updated_at on a set of emails, used after a digest has
// been sent for them.
func (s *Store) TouchEmails(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := buildInQuery(
		"UPDATE emails SET updated_at = CURRENT_TIMESTAMP WHERE id IN (%s)", ids)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("touching emails: %w", err)
	}

	return nil
}

// GetStats summarizes the store.
func (s *Store) GetStats(ctx context.Context) (Stats, error) {
	stats := Stats{
		ByCategory: map[string]int{},
		ByUrgency:  map[string]int{},
	}

	if err := s.db.GetContext(ctx, &stats.Total, "SELECT COUNT(*) FROM emails"); err != nil {
		return stats, fmt.Errorf("counting emails: %w", err)
	}
	if err := s.db.GetContext(ctx, &stats.Processed, "SELECT COUNT(*) FROM emails WHERE processed = 1"); err != nil {
		return stats, fmt.Errorf("counting processed emails: %w", err)
	}
	stats.Unprocessed = stats.Total - stats.Processed

	type bucket struct {
		Key   string `db:"key"`
		Count int    `db:"count"`
	}

	var categories []bucket
	err := s.db.SelectContext(ctx, &categories, `
		SELECT category AS key, COUNT(*) AS count
		FROM emails WHERE category != '' GROUP BY category`)
	if err != nil {
		return stats, fmt.Errorf("counting by category: %w", err)
	}
	for _, b := range categories {
		stats.ByCategory[b.Key] = b.Count
	}

	var urgencies []bucket
	err = s.db.SelectContext(ctx, &urgencies, `
		SELECT urgency AS key, COUNT(*) AS count
		FROM emails WHERE urgency != '' GROUP BY urgency`)
	if err != nil {
		return stats, fmt.Errorf("counting by urgency: %w", err)
	}
	for _, b := range urgencies {
		stats.ByUrgency[b.Key] = b.Count
	}

	err = s.db.GetContext(ctx, &stats.LatestMailAt, "SELECT MAX(date_sent) FROM emails")
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return stats, fmt.Errorf("reading latest mail date: %w", err)
	}

	return stats, nil
}

func buildInQuery(format string, ids []int64) (string, []interface{}, error) {
	if len(ids) == 0 {
		return "", nil, fmt.Errorf("empty id list")
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return fmt.Sprintf(format, placeholders), args, nil
}
