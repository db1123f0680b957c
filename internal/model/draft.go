package model

// Draft 生成的回复草稿
type Draft struct {
	ID      int    `json:"id"`
	EmailID string `json:"email_id"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Status  string `json:"status"` // draft, suggested, saved, sent
}

const (
	DraftStatusDraft     = "draft"
	DraftStatusSuggested = "suggested"
	DraftStatusSaved     = "saved"
	DraftStatusSent      = "sent"
)
