package summary

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"skillcli/internal/store"
)

// Digest is a rendered email digest ready to send.
type Digest struct {
	Subject string
	HTML    string
	Count   int
	IDs     []int64
}

type digestRow struct {
	ID      int64
	Date    string
	From    string
	Subject string
	Urgency string
	Mark    string
}

type digestSection struct {
	Title string
	Rows  []digestRow
}

type digestData struct {
	GeneratedAt string
	Count       int
	Sections    []digestSection
}

var digestTemplate = template.Must(template.New("digest").Parse(`<html><head>
<meta charset="utf-8">
<style>
  table { border-collapse: collapse; width: 100%; font-size: 14px; }
  th { background-color: #4CAF50; color: white; padding: 8px; text-align: left; }
  td { border: 1px solid #ddd; padding: 8px; }
  tr:nth-child(even) { background-color: #f2f2f2; }
  .stats { margin: 10px 0; padding: 10px; background-color: #f9f9f9; border-radius: 5px; }
</style></head><body>
<h2>Email digest</h2>
<div class="stats">
<p>Generated: {{.GeneratedAt}}</p>
<p>{{.Count}} messages</p>
</div>
{{range .Sections}}<h3>{{.Title}} ({{len .Rows}})</h3>
<table><tr><th>ID</th><th>Date</th><th>From</th><th>Subject</th><th>Urgency</th></tr>
{{range .Rows}}<tr><td>{{.ID}}</td><td>{{.Date}}</td><td>{{.From}}</td><td>{{.Subject}}</td><td>{{.Mark}} {{.Urgency}}</td></tr>
{{end}}</table>
{{end}}<hr><p><small>Generated by skillcli</small></p>
</body></html>
`))

// Build renders the HTML digest for a set of classified emails, grouped
// by category.
func Build(emails []store.Email, now time.Time) (Digest, error) {
	digest := Digest{
		Subject: fmt.Sprintf("Email digest - %s", now.Format("2006-01-02 15:04")),
		Count:   len(emails),
	}

	var tasks, notifications, others []digestRow
	for _, e := range emails {
		row := digestRow{
			ID:      e.ID,
			Date:    formatDate(e),
			From:    truncate(e.FromAddr, 30),
			Subject: truncate(e.Subject, 50),
			Urgency: strings.ToUpper(orDash(e.Urgency)),
			Mark:    urgencyMark(e.Urgency),
		}
		digest.IDs = append(digest.IDs, e.ID)

		switch e.Category {
		case store.CategoryTask:
			tasks = append(tasks, row)
		case store.CategoryNotification:
			notifications = append(notifications, row)
		default:
			others = append(others, row)
		}
	}

	data := digestData{
		GeneratedAt: now.Format("2006-01-02 15:04:05"),
		Count:       len(emails),
	}
	if len(tasks) > 0 {
		data.Sections = append(data.Sections, digestSection{Title: "Tasks", Rows: tasks})
	}
	if len(notifications) > 0 {
		data.Sections = append(data.Sections, digestSection{Title: "Notifications", Rows: notifications})
	}
	if len(others) > 0 {
		data.Sections = append(data.Sections, digestSection{Title: "Other", Rows: others})
	}

	var b strings.Builder
	if err := digestTemplate.Execute(&b, data); err != nil {
		return Digest{}, fmt.Errorf("rendering digest: %w", err)
	}
	digest.HTML = b.String()

	return digest, nil
}

func formatDate(e store.Email) string {
	if !e.DateSent.Valid {
		return "N/A"
	}
	return e.DateSent.Time.Format("2006-01-02 15:04")
}

func urgencyMark(urgency string) string {
	if urgency == store.UrgencyUrgent {
		return "[!]"
	}
	return "[ ]"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
