package model

// Prompt 可编辑的提示词模板
type Prompt struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Template   string `json:"template"`
	PromptType string `json:"prompt_type"` // categorization, extraction, reply, chat
}

const (
	PromptTypeCategorization = "categorization"
	PromptTypeExtraction     = "extraction"
	PromptTypeReply          = "reply"
	PromptTypeChat           = "chat"
)
