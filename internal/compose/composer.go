// Package compose generates reply drafts, either from the stored reply
// template or from a fixed set of intent instructions enriched with
// relationship context.
package compose

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"mailmind/internal/graph"
	"mailmind/internal/llm"
	"mailmind/internal/model"
	"mailmind/internal/repository"
	"mailmind/pkg/metrics"
)

// ErrNoReplyTemplate is returned when no reply prompt template exists; the
// composer cannot build a prompt without one.
var ErrNoReplyTemplate = errors.New("no reply prompt template configured")

// ErrUnknownIntent is returned for smart-reply intents outside the fixed set.
var ErrUnknownIntent = errors.New("unknown smart reply intent")

// 固定的意图指令集，不走存储模板
var intentInstructions = map[string]string{
	"acknowledge": "Write a brief acknowledgment showing you received and will review the message.",
	"decline":     "Write a polite but firm decline, offering an alternative if possible.",
	"accept":      "Write an enthusiastic acceptance, confirming next steps.",
	"clarify":     "Ask for clarification on the key points that are unclear.",
	"delegate":    "Explain that you're forwarding this to the appropriate person.",
	"default":     "Write an appropriate professional response.",
}

// StyleParams are optional directives appended to the reply template.
type StyleParams struct {
	Tone         string
	Length       string
	Instructions string
}

// Composer builds reply prompts and persists the resulting drafts.
type Composer struct {
	emails  *repository.EmailRepository
	drafts  *repository.DraftRepository
	prompts *repository.PromptRepository
	graph   *graph.Builder
	gateway *llm.Gateway
	logger  *zap.Logger
}

func NewComposer(
	emails *repository.EmailRepository,
	drafts *repository.DraftRepository,
	prompts *repository.PromptRepository,
	graphBuilder *graph.Builder,
	gateway *llm.Gateway,
	logger *zap.Logger,
) *Composer {
	return &Composer{
		emails:  emails,
		drafts:  drafts,
		prompts: prompts,
		graph:   graphBuilder,
		gateway: gateway,
		logger:  logger,
	}
}

// Compose generates a draft reply from the stored reply template. The draft
// is persisted before returning; repository.ErrEmailNotFound and
// ErrNoReplyTemplate pass through to the caller.
func (c *Composer) Compose(ctx context.Context, emailID string, style StyleParams) (*model.Draft, error) {
	e, err := c.emails.GetByID(ctx, emailID)
	if err != nil {
		return nil, err
	}

	tpl, err := c.prompts.GetByType(ctx, model.PromptTypeReply)
	if err != nil {
		if errors.Is(err, repository.ErrPromptNotFound) {
			return nil, ErrNoReplyTemplate
		}
		return nil, err
	}

	prompt := buildReplyPrompt(tpl.Template, e, style)
	resp := c.gateway.Generate(ctx, prompt, false)

	draft := &model.Draft{
		EmailID: e.ID,
		Subject: "Re: " + e.Subject,
		Body:    resp.Text,
		Status:  model.DraftStatusDraft,
	}
	if err := c.drafts.Insert(ctx, draft); err != nil {
		return nil, fmt.Errorf("persist draft for email %s: %w", e.ID, err)
	}
	metrics.IncrementDraftGenerated("draft")

	c.logger.Info("draft composed",
		zap.String("email_id", e.ID),
		zap.Int("draft_id", draft.ID),
		zap.String("origin", string(resp.Origin)))
	return draft, nil
}

// SmartReply generates an intent-driven reply with relationship context
// prepended, persisted as a suggested draft.
func (c *Composer) SmartReply(ctx context.Context, emailID, intent string) (*model.Draft, error) {
	if intent == "" {
		intent = "default"
	}
	instruction, ok := intentInstructions[intent]
	if !ok {
		return nil, ErrUnknownIntent
	}

	e, err := c.emails.GetByID(ctx, emailID)
	if err != nil {
		return nil, err
	}

	relContext, err := c.graph.BuildContext(ctx, e.Sender)
	if err != nil {
		// 上下文是辅助信息，拿不到也继续
		c.logger.Warn("relationship context unavailable", zap.Error(err))
		relContext = ""
	}

	prompt := buildSmartReplyPrompt(e, relContext, instruction)
	resp := c.gateway.Generate(ctx, prompt, false)

	draft := &model.Draft{
		EmailID: e.ID,
		Subject: "Re: " + e.Subject,
		Body:    resp.Text,
		Status:  model.DraftStatusSuggested,
	}
	if err := c.drafts.Insert(ctx, draft); err != nil {
		return nil, fmt.Errorf("persist smart reply for email %s: %w", e.ID, err)
	}
	metrics.IncrementDraftGenerated("smart_reply")
	return draft, nil
}

// Intents returns the fixed smart-reply intent names.
func Intents() []string {
	return []string{"acknowledge", "accept", "decline", "clarify", "delegate", "default"}
}

func buildReplyPrompt(template string, e *model.Email, style StyleParams) string {
	var directives []string
	if style.Tone != "" {
		directives = append(directives, "Tone: "+style.Tone)
	}
	if style.Length != "" {
		directives = append(directives, "Length: "+style.Length)
	}
	if len(directives) > 0 {
		template += "\n\nStyle directives:\n" + strings.Join(directives, "\n")
	}
	if style.Instructions != "" {
		template += "\n\nAdditional Instructions: " + style.Instructions
	}
	template = strings.ReplaceAll(template, "{subject}", e.Subject)
	return strings.ReplaceAll(template, "{body}", e.Body)
}

func buildSmartReplyPrompt(e *model.Email, relContext, instruction string) string {
	if relContext == "" {
		relContext = "No previous history with this sender."
	}
	return fmt.Sprintf(`You are composing a reply to this email.

ORIGINAL EMAIL:
From: %s
Subject: %s
Body: %s

CONTEXT FROM RELATIONSHIP HISTORY:
%s

INSTRUCTION: %s

Write a professional, concise reply. Keep it under 100 words unless the situation requires more detail.
Do not include subject line, just the body of the reply.`,
		e.Sender, e.Subject, e.Body, relContext, instruction)
}
