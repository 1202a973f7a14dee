package imap

import (
	"fmt"
	"io"
	"strings"
)

const reportRule = 80

// WriteReport renders fetched messages as the flat text report the fetch
// skill produces.
func WriteReport(w io.Writer, messages []Message) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Fetched %d messages\n", len(messages))
	b.WriteString(strings.Repeat("=", reportRule) + "\n\n")

	for i, msg := range messages {
		fmt.Fprintf(&b, "Message #%d\n", i+1)
		b.WriteString(strings.Repeat("=", reportRule) + "\n")
		fmt.Fprintf(&b, "From: %s\n", msg.From)
		fmt.Fprintf(&b, "Subject: %s\n", msg.Subject)
		if !msg.Date.IsZero() {
			fmt.Fprintf(&b, "Date: %s\n", msg.Date.Format("2006-01-02 15:04:05 -0700"))
		}
		fmt.Fprintf(&b, "To: %s\n", msg.To)
		if msg.Cc != "" {
			fmt.Fprintf(&b, "Cc: %s\n", msg.Cc)
		}
		fmt.Fprintf(&b, "Attachments: %v\n", msg.HasAttachments())

		if len(msg.Attachments) > 0 {
			b.WriteString("\nAttachment list:\n")
			for _, att := range msg.Attachments {
				fmt.Fprintf(&b, "  - %s (%d bytes, %s)\n", att.Filename, att.Size, att.ContentType)
			}
		}

		if msg.TextBody != "" {
			b.WriteString("\nBody:\n")
			b.WriteString(strings.Repeat("-", reportRule) + "\n")
			b.WriteString(msg.TextBody)
			b.WriteString("\n" + strings.Repeat("-", reportRule) + "\n")
		}

		b.WriteString("\n\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
