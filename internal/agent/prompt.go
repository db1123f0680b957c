package agent

import (
	"fmt"
	"strings"

	"mailmind/internal/model"
)

// buildAnalysisPrompt assembles the single comprehensive prompt for one
// analysis pass. One call populates category, sentiment, urgency, deadline
// and child records together, so the schema and the category guidance must
// both live in the prompt text.
func buildAnalysisPrompt(e *model.Email) string {
	var b strings.Builder

	b.WriteString("Analyze this email and return a single JSON object describing it.\n\n")
	fmt.Fprintf(&b, "Subject: %s\nSender: %s\nBody:\n%s\n\n", e.Subject, e.Sender, e.Body)

	b.WriteString("Allowed categories (choose exactly one, never \"Uncategorized\"):\n")
	for _, c := range model.AllCategories() {
		fmt.Fprintf(&b, "- %q: %s\n", string(c), c.Guidance())
	}

	b.WriteString(`
Urgency scoring guidance:
- 9-10: explicit same-day deadline or emergency language
- 7-8: deadline within 48 hours or strong time pressure
- 4-6: actionable but no near-term deadline
- 1-3: informational, promotional, or no action needed
- 0: pure noise

Return ONLY the JSON object, no surrounding text, with this shape:
{
  "category": string,
  "category_reasoning": string,
  "sentiment": "positive" | "negative" | "neutral",
  "emotion": "happy" | "frustrated" | "angry" | "neutral" | "excited" | "worried" | "professional",
  "urgency_score": integer 0-10,
  "confidence": number 0.0-1.0,
  "deadline": {"has_deadline": boolean, "deadline_text": string or null, "deadline_iso": string or null},
  "action_items": [{"description": string, "deadline": string or null}],
  "followups": [{"commitment": string, "committed_by": "me" or the sender address, "due_date": string or null}]
}
`)
	return b.String()
}
