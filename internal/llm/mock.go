package llm

import (
	"fmt"
	"strings"
)

// mockUnavailable is returned for prompt shapes the responder does not
// recognize.
const mockUnavailable = "I am a mock agent. (Reason: no provider API key is configured)"

// mockResponder is a deterministic stand-in for a real model provider. It is
// a pure function of the prompt text: the same email always yields the same
// analysis, which is what makes the orchestrator testable offline.
type mockResponder struct{}

func (mockResponder) Generate(prompt string, jsonMode bool) string {
	switch {
	// 角色标记在内容标记之前：聊天/简报的上下文里会嵌入任意邮件正文
	case strings.Contains(prompt, "preparing a meeting brief"):
		return `{"summary": "Mock brief: the sender asked to discuss the referenced email.", "key_points": ["Review the email thread before the meeting"], "suggested_talking_points": ["Confirm the agenda and expected outcomes"], "sentiment": "neutral"}`
	case strings.Contains(prompt, "Email Productivity Agent"):
		return "Based on the inbox context provided, here is what I can tell you. (Mock response: no provider API key is configured.)"
	case strings.Contains(prompt, "Analyze this email"):
		return mockAnalysis(prompt)
	case strings.Contains(prompt, "extract any commitments"):
		return `[{"commitment": "Send the requested update", "committed_by": "me", "due_date": null}]`
	case strings.Contains(prompt, "Draft a") || strings.Contains(prompt, "composing a reply"):
		return "Dear Sender,\n\nThank you for your email. I have received it and will get back to you shortly.\n\nBest,\nAgent"
	default:
		return mockUnavailable
	}
}

// mockAnalysis branches on content keywords to produce a plausible
// category/sentiment/urgency triple plus child records, as valid JSON.
// Only the embedded email content is scanned: the schema and category
// guidance sections of the prompt carry words like "deadline" that would
// otherwise trigger on every call.
func mockAnalysis(prompt string) string {
	content := prompt
	if i := strings.Index(content, "Subject:"); i >= 0 {
		content = content[i:]
	}
	if j := strings.Index(content, "Allowed categories"); j >= 0 {
		content = content[:j]
	}
	p := strings.ToLower(content)
	switch {
	case containsAny(p, "urgent", "asap", "deadline"):
		return analysisJSON("Work: Important",
			"Mock analysis: urgency language detected in the email.",
			"negative", "anxious", 9,
			`[{"description": "Handle the urgent request from this email", "deadline": "today"}]`,
			`[{"commitment": "Respond to the sender", "committed_by": "me", "due_date": "today"}]`,
			`{"has_deadline": true, "deadline_text": "today", "deadline_iso": null}`)
	case containsAny(p, "invoice", "payment", "receipt"):
		return analysisJSON("Finance",
			"Mock analysis: billing or payment content detected.",
			"neutral", "neutral", 6,
			`[{"description": "Review the invoice details", "deadline": null}]`, "[]",
			`{"has_deadline": false, "deadline_text": null, "deadline_iso": null}`)
	case containsAny(p, "winner", "prize", "free"):
		return analysisJSON("Promotions",
			"Mock analysis: promotional prize language detected.",
			"positive", "excited", 2, "[]", "[]",
			`{"has_deadline": false, "deadline_text": null, "deadline_iso": null}`)
	case containsAny(p, "unsubscribe", "newsletter"):
		return analysisJSON("Newsletter",
			"Mock analysis: bulk mailing content detected.",
			"neutral", "neutral", 1, "[]", "[]",
			`{"has_deadline": false, "deadline_text": null, "deadline_iso": null}`)
	case containsAny(p, "meeting", "sync", "agenda"):
		return analysisJSON("Work: Routine",
			"Mock analysis: standard work coordination content.",
			"neutral", "neutral", 4,
			`[{"description": "Prepare for the meeting", "deadline": null}]`, "[]",
			`{"has_deadline": false, "deadline_text": null, "deadline_iso": null}`)
	case containsAny(p, "flight", "itinerary", "booking"):
		return analysisJSON("Travel",
			"Mock analysis: travel arrangement content detected.",
			"neutral", "neutral", 5, "[]", "[]",
			`{"has_deadline": false, "deadline_text": null, "deadline_iso": null}`)
	default:
		return analysisJSON("General",
			"Mock analysis: no strong signals, treating as general correspondence.",
			"neutral", "neutral", 3, "[]", "[]",
			`{"has_deadline": false, "deadline_text": null, "deadline_iso": null}`)
	}
}

func analysisJSON(category, reasoning, sentiment, emotion string, urgency int, actionItems, followups, deadline string) string {
	return fmt.Sprintf(`{
  "category": %q,
  "category_reasoning": %q,
  "sentiment": %q,
  "emotion": %q,
  "urgency_score": %d,
  "deadline": %s,
  "action_items": %s,
  "followups": %s
}`, category, reasoning, sentiment, emotion, urgency, deadline, actionItems, followups)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
