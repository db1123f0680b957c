package model

import "time"

// Email 表示 emails 表的完整结构
type Email struct {
	ID         string    `json:"id"`
	Sender     string    `json:"sender"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"received_at"`
	IsRead     bool      `json:"is_read"`

	// 分析产出字段，分析完成前保持默认值
	Category     string `json:"category"`
	Sentiment    string `json:"sentiment"`
	Emotion      string `json:"emotion"`
	UrgencyScore int    `json:"urgency_score"`

	// Deadline-aware prioritization. DeadlineText holds the phrase exactly
	// as the model reported it; DeadlineAt is only set when that phrase also
	// carried a parseable timestamp.
	DeadlineAt   *time.Time `json:"deadline_at,omitempty"`
	DeadlineText *string    `json:"deadline_text,omitempty"`

	// Dark pattern detection, always populated by an analysis pass
	HasDarkPatterns     bool     `json:"has_dark_patterns"`
	DarkPatterns        []string `json:"dark_patterns"`
	DarkPatternSeverity string   `json:"dark_pattern_severity"`

	ConfidenceScore   float64 `json:"confidence_score"`
	ProcessingSeconds float64 `json:"processing_seconds"`
}

// Analyzed reports whether an analysis pass has terminated on this email,
// successfully or not.
func (e *Email) Analyzed() bool {
	return e.Category != "" && e.Category != CategoryPending
}
