package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"mailmind/internal/llm"
	"mailmind/internal/model"
	"mailmind/internal/repository"
)

const (
	// chatContextLimit caps how many recent emails get embedded when the
	// query names no specific email.
	chatContextLimit = 15
	chatSnippetLen   = 200
)

// ChatService answers free-form queries with inbox content as context.
type ChatService struct {
	emails  *repository.EmailRepository
	gateway *llm.Gateway
	logger  *zap.Logger
}

func NewChatService(emails *repository.EmailRepository, gateway *llm.Gateway, logger *zap.Logger) *ChatService {
	return &ChatService{emails: emails, gateway: gateway, logger: logger}
}

// Chat runs one query through the gateway. When emailID is set, that email
// becomes the context; otherwise the most recent emails do. A context email
// that no longer exists downgrades to no context instead of failing the chat.
func (s *ChatService) Chat(ctx context.Context, query, emailID string) (string, llm.Origin, error) {
	inboxContext := ""
	if emailID != "" {
		e, err := s.emails.GetByID(ctx, emailID)
		switch {
		case err == nil:
			inboxContext = fmt.Sprintf("Context Email:\nSender: %s\nSubject: %s\nBody: %s\n\n",
				e.Sender, e.Subject, e.Body)
		case errors.Is(err, repository.ErrEmailNotFound):
			s.logger.Warn("chat context email missing, continuing without it",
				zap.String("email_id", emailID))
		default:
			return "", "", err
		}
	} else {
		recent, err := s.emails.List(ctx, 0, chatContextLimit)
		if err != nil {
			return "", "", err
		}
		inboxContext = recentInboxContext(recent)
	}

	resp := s.gateway.Generate(ctx, buildChatPrompt(inboxContext, query), false)
	return resp.Text, resp.Origin, nil
}

func recentInboxContext(emails []model.Email) string {
	if len(emails) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Here are the recent emails in the user's inbox:\n\n")
	for i := range emails {
		e := &emails[i]
		fmt.Fprintf(&b, "ID: %s\nSender: %s\nSubject: %s\nDate: %s\nBody: %s\nCategory: %s\n\n",
			e.ID, e.Sender, e.Subject, e.ReceivedAt.Format(time.RFC3339),
			bodySnippet(e.Body), e.Category)
	}
	b.WriteString("End of emails.\n\n")
	return b.String()
}

func bodySnippet(body string) string {
	if len(body) <= chatSnippetLen {
		return body
	}
	cut := chatSnippetLen
	// 不要切断多字节字符
	for cut > 0 && body[cut]&0xC0 == 0x80 {
		cut--
	}
	return body[:cut] + "..."
}

func buildChatPrompt(inboxContext, query string) string {
	return fmt.Sprintf(`You are a helpful Email Productivity Agent. You have access to the user's emails provided in the context below.

IMPORTANT: Do not use excessive asterisks (*) for formatting. Use clean, professional formatting with headers and simple lists.

%sUser Query: %s

Agent Response:`, inboxContext, query)
}
