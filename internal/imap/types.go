package imap

import "time"

type MessageSummary struct {
	UID     uint32
	Subject string
	From    string
	Date    time.Time
	Size    uint32
	Flags   []string
}

// Attachment describes an attachment part without its payload.
type Attachment struct {
	Filename    string
	Size        int64
	ContentType string
}

// Message is a fully parsed message as the fetch and sync skills consume
// it. MessageID is the dedupe key for the local store.
type Message struct {
	UID         uint32
	Folder      string
	MessageID   string
	Subject     string
	From        string
	To          string
	Cc          string
	Date        time.Time
	TextBody    string
	HTMLBody    string
	Attachments []Attachment
}

func (m Message) HasAttachments() bool {
	return len(m.Attachments) > 0
}
