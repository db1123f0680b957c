package model

// ActionItem 从邮件中提取的待办任务
type ActionItem struct {
	ID          int     `json:"id"`
	EmailID     string  `json:"email_id"`
	Description string  `json:"description"`
	Deadline    *string `json:"deadline,omitempty"`
	Status      string  `json:"status"` // pending, completed
}

const (
	ActionItemPending   = "pending"
	ActionItemCompleted = "completed"
)
