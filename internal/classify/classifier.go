package classify

import (
	"context"
	"fmt"
	"strings"

	"skillcli/internal/store"
)

// bodyPreviewLen bounds how much of the body goes into the prompt.
const bodyPreviewLen = 1000

// Generator is the language model surface the classifier needs.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Ping(ctx context.Context) error
}

// Classification is one triage verdict.
type Classification struct {
	Category string
	Urgency  string
}

// Result counts a classification run.
type Result struct {
	Total     int
	Processed int
	Failed    int
}

// ProgressFunc reports per-message progress during a run.
type ProgressFunc func(index, total int, subject string, c Classification, err error)

// Classifier triages stored emails with a language model.
type Classifier struct {
	model Generator
	store *store.Store
}

func NewClassifier(model Generator, s *store.Store) *Classifier {
	return &Classifier{model: model, store: s}
}

// BuildPrompt renders the triage prompt for one email.
func BuildPrompt(subject, body string) string {
	runes := []rune(body)
	if len(runes) > bodyPreviewLen {
		body = string(runes[:bodyPreviewLen])
	}

	return fmt.Sprintf(`Analyze the following email and judge its type and urgency.

Subject: %s
Body: %s

Answer strictly in this format and nothing else:
category: task or notification
urgency: urgent or normal

Criteria:
- task: actionable work, assignments, meeting invitations, to-dos
- notification: announcements, reports, FYI mail
- urgent: contains "urgent", "important", "ASAP", or is a direct directive
- normal: routine mail with no urgency markers
`, subject, body)
}

// ParseResponse extracts the two labels from a model response. Parsing is
// line-oriented and lenient; anything unrecognized falls back to
// notification/normal.
func ParseResponse(response string) Classification {
	c := Classification{}

	for _, line := range strings.Split(response, "\n") {
		line = strings.ToLower(strings.TrimSpace(line))
		if strings.Contains(line, "category:") || strings.Contains(line, "type:") {
			switch {
			case strings.Contains(line, store.CategoryTask):
				c.Category = store.CategoryTask
			case strings.Contains(line, store.CategoryNotification):
				c.Category = store.CategoryNotification
			}
		}
		if strings.Contains(line, "urgency:") || strings.Contains(line, "priority:") {
			switch {
			case strings.Contains(line, store.UrgencyUrgent):
				c.Urgency = store.UrgencyUrgent
			case strings.Contains(line, store.UrgencyNormal):
				c.Urgency = store.UrgencyNormal
			}
		}
	}

	if c.Category == "" {
		c.Category = store.CategoryNotification
	}
	if c.Urgency == "" {
		c.Urgency = store.UrgencyNormal
	}

	return c
}

// ClassifyEmail triages a single email.
func (c *Classifier) ClassifyEmail(ctx context.Context, subject, body string) (Classification, error) {
	response, err := c.model.Generate(ctx, BuildPrompt(subject, body))
	if err != nil {
		return Classification{}, err
	}
	return ParseResponse(response), nil
}

// Run triages up to limit unclassified emails, recording each verdict in
// the store. A per-message failure is counted and does not stop the run.
func (c *Classifier) Run(ctx context.Context, limit int, progress ProgressFunc) (Result, error) {
	if err := c.model.Ping(ctx); err != nil {
		return Result{}, err
	}

	emails, err := c.store.Unclassified(ctx, limit)
	if err != nil {
		return Result{}, err
	}

	result := Result{Total: len(emails)}

	for i, e := range emails {
		verdict, err := c.ClassifyEmail(ctx, e.Subject, e.BodyPlain)
		if err == nil {
			err = c.store.SetClassification(ctx, e.MessageID, verdict.Category, verdict.Urgency)
		}

		if err != nil {
			result.Failed++
		} else {
			result.Processed++
		}

		if progress != nil {
			progress(i+1, len(emails), e.Subject, verdict, err)
		}

		if ctx.Err() != nil {
			return result, ctx.Err()
		}
	}

	return result, nil
}
