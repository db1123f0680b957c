package model

import "time"

// FollowUp 从邮件中提取的承诺事项。CommittedBy 是字面量 "me" 或对方地址。
type FollowUp struct {
	ID          int       `json:"id"`
	EmailID     string    `json:"email_id"`
	Commitment  string    `json:"commitment"`
	CommittedBy string    `json:"committed_by"`
	DueDate     *string   `json:"due_date,omitempty"`
	Status      string    `json:"status"` // pending, completed, overdue
	CreatedAt   time.Time `json:"created_at"`
}

const (
	FollowUpPending   = "pending"
	FollowUpCompleted = "completed"
	// FollowUpOverdue is only ever set by explicit client action; nothing in
	// the backend transitions a follow-up to overdue automatically.
	FollowUpOverdue = "overdue"
)
