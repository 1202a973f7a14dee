package store

type migration struct {
	version int
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS emails (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	message_id TEXT UNIQUE NOT NULL,
	uid INTEGER DEFAULT 0,
	folder TEXT DEFAULT 'INBOX',
	subject TEXT DEFAULT '',
	from_addr TEXT DEFAULT '',
	to_addr TEXT DEFAULT '',
	cc_addr TEXT DEFAULT '',
	date_sent TIMESTAMP,
	body_plain TEXT DEFAULT '',
	body_html TEXT DEFAULT '',
	has_attachments INTEGER DEFAULT 0,
	processed INTEGER DEFAULT 0,
	category TEXT DEFAULT '',
	urgency TEXT DEFAULT '',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS attachments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email_id INTEGER NOT NULL,
	filename TEXT NOT NULL,
	size INTEGER DEFAULT 0,
	content_type TEXT DEFAULT '',
	FOREIGN KEY (email_id) REFERENCES emails(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_emails_message_id ON emails(message_id);
CREATE INDEX IF NOT EXISTS idx_emails_category ON emails(category);
CREATE INDEX IF NOT EXISTS idx_emails_urgency ON emails(urgency);
CREATE INDEX IF NOT EXISTS idx_emails_processed ON emails(processed);
CREATE INDEX IF NOT EXISTS idx_emails_date_sent ON emails(date_sent DESC);
CREATE INDEX IF NOT EXISTS idx_attachments_email_id ON attachments(email_id);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
