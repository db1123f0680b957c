package agent

import (
	"encoding/json"
	"errors"
	"time"

	"mailmind/internal/model"
)

var errNoJSONObject = errors.New("no JSON object found in model response")

type deadlineResult struct {
	HasDeadline  bool    `json:"has_deadline"`
	DeadlineText *string `json:"deadline_text"`
	DeadlineISO  *string `json:"deadline_iso"`
}

type actionItemResult struct {
	Description string  `json:"description"`
	Deadline    *string `json:"deadline"`
}

type followupResult struct {
	Commitment  string  `json:"commitment"`
	CommittedBy string  `json:"committed_by"`
	DueDate     *string `json:"due_date"`
}

type analysisResult struct {
	Category          string             `json:"category"`
	CategoryReasoning string             `json:"category_reasoning"`
	Sentiment         string             `json:"sentiment"`
	Emotion           string             `json:"emotion"`
	UrgencyScore      *int               `json:"urgency_score"`
	Confidence        *float64           `json:"confidence"`
	Deadline          *deadlineResult    `json:"deadline"`
	ActionItems       []actionItemResult `json:"action_items"`
	Followups         []followupResult   `json:"followups"`
}

// parseAnalysis extracts the structured result from raw model output. A
// direct parse is tried first; if the model wrapped the object in prose, the
// first balanced object-shaped substring is parsed instead.
func parseAnalysis(text string) (analysisResult, error) {
	var res analysisResult
	if err := json.Unmarshal([]byte(text), &res); err == nil {
		return res, nil
	}
	sub, ok := firstJSONObject(text)
	if !ok {
		return res, errNoJSONObject
	}
	if err := json.Unmarshal([]byte(sub), &res); err != nil {
		return res, err
	}
	return res, nil
}

// firstJSONObject scans for the first brace-balanced substring, skipping
// braces inside string literals.
func firstJSONObject(text string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i, r := range text {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			inString = true
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					return text[start : i+1], true
				}
			}
		}
	}
	return "", false
}

// apply writes the parsed result onto the email with defensive defaults.
// A missing category is made visible rather than silently defaulted, since
// category drives routing; the other fields degrade quietly.
func apply(e *model.Email, res analysisResult) {
	if res.Category == "" {
		e.Category = model.CategoryMissing
	} else if c, ok := model.ParseCategory(res.Category); ok {
		e.Category = string(c)
	} else {
		// 未知类别同样要可见，并带上原始值方便排查
		e.Category = model.UnknownCategory(res.Category)
	}

	e.Sentiment = valueOr(res.Sentiment, "neutral")
	e.Emotion = valueOr(res.Emotion, "neutral")

	e.UrgencyScore = 5
	if res.UrgencyScore != nil {
		e.UrgencyScore = clamp(*res.UrgencyScore, 0, 10)
	}

	e.ConfidenceScore = 0.5
	if res.Confidence != nil && *res.Confidence >= 0 && *res.Confidence <= 1 {
		e.ConfidenceScore = *res.Confidence
	}

	applyDeadline(e, res.Deadline)
}

// applyDeadline stores the free-text phrase verbatim and parses the ISO
// timestamp defensively. A malformed timestamp leaves the timestamp unset
// but never touches the text field.
func applyDeadline(e *model.Email, d *deadlineResult) {
	if d == nil || !d.HasDeadline {
		return
	}
	if d.DeadlineText != nil && *d.DeadlineText != "" {
		e.DeadlineText = d.DeadlineText
	}
	if d.DeadlineISO == nil || *d.DeadlineISO == "" {
		return
	}
	if ts, err := time.Parse(time.RFC3339, *d.DeadlineISO); err == nil {
		e.DeadlineAt = &ts
		return
	}
	if ts, err := time.Parse("2006-01-02", *d.DeadlineISO); err == nil {
		e.DeadlineAt = &ts
	}
}

// childRecords converts the parsed lists into new child rows. Conversion
// never merges against existing rows: reanalysis appends.
func childRecords(emailID string, res analysisResult) ([]model.ActionItem, []model.FollowUp) {
	var items []model.ActionItem
	for _, a := range res.ActionItems {
		items = append(items, model.ActionItem{
			EmailID:     emailID,
			Description: valueOr(a.Description, "Unknown task"),
			Deadline:    a.Deadline,
			Status:      model.ActionItemPending,
		})
	}
	var fups []model.FollowUp
	for _, f := range res.Followups {
		if f.Commitment == "" {
			continue
		}
		fups = append(fups, model.FollowUp{
			EmailID:     emailID,
			Commitment:  f.Commitment,
			CommittedBy: valueOr(f.CommittedBy, "me"),
			DueDate:     f.DueDate,
			Status:      model.FollowUpPending,
		})
	}
	return items, fups
}

func valueOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
