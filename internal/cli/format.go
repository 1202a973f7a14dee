package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"skillcli/internal/imap"
	"skillcli/internal/store"
)

func printMessages(out io.Writer, messages []imap.MessageSummary) {
	tw := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "UID\tDATE\tFROM\tSUBJECT")
	for _, msg := range messages {
		date := ""
		if !msg.Date.IsZero() {
			date = msg.Date.Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", msg.UID, date, msg.From, msg.Subject)
	}
	_ = tw.Flush()
}

func printEmails(out io.Writer, emails []store.Email) {
	tw := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tFROM\tSUBJECT\tCATEGORY\tURGENCY")
	for _, e := range emails {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", e.ID, storedDate(e), e.FromAddr, e.Subject, e.Category, e.Urgency)
	}
	_ = tw.Flush()
}

func printEmailDetails(out io.Writer, emails []store.Email) {
	rule := strings.Repeat("-", 60)
	for _, e := range emails {
		fmt.Fprintln(out, rule)
		fmt.Fprintf(out, "ID: %d\n", e.ID)
		fmt.Fprintf(out, "From: %s\n", e.FromAddr)
		fmt.Fprintf(out, "Subject: %s\n", e.Subject)
		fmt.Fprintf(out, "Date: %s\n", storedDate(e))
		if e.Category != "" {
			fmt.Fprintf(out, "Category: %s (%s)\n", e.Category, e.Urgency)
		}
		if e.HasAttachments {
			fmt.Fprintln(out, "Has attachments: yes")
		}
		if e.BodyPlain != "" {
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, e.BodyPlain)
		}
	}
	if len(emails) > 0 {
		fmt.Fprintln(out, rule)
	}
}

func storedDate(e store.Email) string {
	if !e.DateSent.Valid {
		return ""
	}
	return e.DateSent.Time.Format("2006-01-02 15:04")
}
