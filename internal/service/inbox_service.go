package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mailmind/internal/model"
	"mailmind/internal/repository"
)

// seedEmail mirrors the JSON shape of the bundled inbox file.
type seedEmail struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Timestamp string `json:"timestamp"`
	IsRead    bool   `json:"is_read"`
}

// InboxService owns mailbox ingestion and read access.
type InboxService struct {
	emails  *repository.EmailRepository
	prompts *repository.PromptRepository
	logger  *zap.Logger
}

func NewInboxService(emails *repository.EmailRepository, prompts *repository.PromptRepository, logger *zap.Logger) *InboxService {
	return &InboxService{emails: emails, prompts: prompts, logger: logger}
}

// Seed loads the bundled inbox and prompt templates, but only into empty
// tables: re-running seed against populated storage is a no-op per table.
func (s *InboxService) Seed(ctx context.Context, inboxPath, promptsPath string) error {
	if err := s.seedEmails(ctx, inboxPath); err != nil {
		return err
	}
	return s.seedPrompts(ctx, promptsPath)
}

func (s *InboxService) seedEmails(ctx context.Context, path string) error {
	count, err := s.emails.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("inbox seed file missing, skipping", zap.String("path", path))
			return nil
		}
		return err
	}
	var seeds []seedEmail
	if err := json.Unmarshal(data, &seeds); err != nil {
		return fmt.Errorf("parse inbox seed %s: %w", path, err)
	}

	for _, se := range seeds {
		e, err := seedToEmail(se)
		if err != nil {
			return err
		}
		if err := s.emails.Create(ctx, e); err != nil {
			return fmt.Errorf("seed email %s: %w", se.ID, err)
		}
	}
	s.logger.Info("inbox seeded", zap.Int("emails", len(seeds)))
	return nil
}

func (s *InboxService) seedPrompts(ctx context.Context, path string) error {
	count, err := s.prompts.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("prompt seed file missing, skipping", zap.String("path", path))
			return nil
		}
		return err
	}
	var prompts []model.Prompt
	if err := json.Unmarshal(data, &prompts); err != nil {
		return fmt.Errorf("parse prompt seed %s: %w", path, err)
	}

	for i := range prompts {
		if err := s.prompts.Create(ctx, &prompts[i]); err != nil {
			return fmt.Errorf("seed prompt %s: %w", prompts[i].Name, err)
		}
	}
	s.logger.Info("prompts seeded", zap.Int("prompts", len(prompts)))
	return nil
}

// Simulate ingests a single new email with a generated id, for manual
// testing and demos.
func (s *InboxService) Simulate(ctx context.Context, sender, subject, body string) (*model.Email, error) {
	e := &model.Email{
		ID:         uuid.NewString(),
		Sender:     sender,
		Subject:    subject,
		Body:       body,
		ReceivedAt: time.Now().UTC(),
	}
	if err := s.emails.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create simulated email: %w", err)
	}
	s.logger.Info("email ingested", zap.String("email_id", e.ID), zap.String("sender", sender))
	return e, nil
}

// List returns a page of emails, newest first.
func (s *InboxService) List(ctx context.Context, skip, limit int) ([]model.Email, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	return s.emails.List(ctx, skip, limit)
}

// Get returns one email; repository.ErrEmailNotFound passes through.
func (s *InboxService) Get(ctx context.Context, id string) (*model.Email, error) {
	return s.emails.GetByID(ctx, id)
}

// Delete removes an email and, through the storage cascade, its action
// items, follow-ups and drafts.
func (s *InboxService) Delete(ctx context.Context, id string) error {
	return s.emails.Delete(ctx, id)
}

// MarkRead flips the read flag.
func (s *InboxService) MarkRead(ctx context.Context, id string, read bool) error {
	return s.emails.MarkRead(ctx, id, read)
}
