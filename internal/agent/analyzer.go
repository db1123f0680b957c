// Package agent holds the email analysis orchestrator: one pass runs the
// dark-pattern rules, makes a single comprehensive model call, and commits
// every derived field and child record as one transaction.
package agent

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"mailmind/internal/darkpatterns"
	"mailmind/internal/llm"
	"mailmind/internal/model"
	"mailmind/internal/repository"
	"mailmind/pkg/metrics"
)

// maxDiagnosticLen bounds the error text embedded in a failed email's
// category so a huge provider error cannot blow up the column.
const maxDiagnosticLen = 120

// Analyzer drives the per-email state machine
// unanalyzed -> analyzing -> analyzed | failed. There is no retry and no
// partial-success state: either the full parsed result is applied, or the
// email is committed in a visible failed state.
type Analyzer struct {
	emails    *repository.EmailRepository
	actions   *repository.ActionItemRepository
	followups *repository.FollowUpRepository
	gateway   *llm.Gateway
	logger    *zap.Logger
}

func NewAnalyzer(
	emails *repository.EmailRepository,
	actions *repository.ActionItemRepository,
	followups *repository.FollowUpRepository,
	gateway *llm.Gateway,
	logger *zap.Logger,
) *Analyzer {
	return &Analyzer{
		emails:    emails,
		actions:   actions,
		followups: followups,
		gateway:   gateway,
		logger:    logger,
	}
}

// Analyze runs one full analysis pass against the email. Dark patterns are
// detected first and survive any model failure. The returned email reflects
// the committed state; repository.ErrEmailNotFound passes through for the
// caller's not-found mapping.
func (a *Analyzer) Analyze(ctx context.Context, emailID string) (*model.Email, error) {
	e, err := a.emails.GetByID(ctx, emailID)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	dp := darkpatterns.Detect(e.Subject, e.Body)
	e.HasDarkPatterns = dp.HasPatterns
	e.DarkPatterns = dp.Patterns
	e.DarkPatternSeverity = dp.Severity

	resp := a.gateway.Generate(ctx, buildAnalysisPrompt(e), true)
	if resp.FailKind != llm.FailNone {
		a.logger.Warn("provider degraded for analysis pass",
			zap.String("email_id", e.ID),
			zap.String("fail_kind", string(resp.FailKind)))
	}

	var items []model.ActionItem
	var fups []model.FollowUp

	res, parseErr := parseAnalysis(resp.Text)
	if parseErr != nil {
		markFailed(e, parseErr)
	} else {
		apply(e, res)
		items, fups = childRecords(e.ID, res)
	}

	e.ProcessingSeconds = time.Since(start).Seconds()

	if err := a.commit(ctx, e, items, fups); err != nil {
		return nil, fmt.Errorf("commit analysis for email %s: %w", e.ID, err)
	}

	status := "success"
	if parseErr != nil {
		status = "failed"
	}
	metrics.RecordAnalysisDuration(status, time.Since(start))
	metrics.IncrementEmailProcessed(status)

	a.logger.Info("analysis pass finished",
		zap.String("email_id", e.ID),
		zap.String("category", e.Category),
		zap.Int("urgency", e.UrgencyScore),
		zap.String("status", status),
		zap.Float64("seconds", e.ProcessingSeconds))
	return e, nil
}

// commit writes the scalar fields and appends child records in one
// transaction. Children are never deduplicated against prior runs.
func (a *Analyzer) commit(ctx context.Context, e *model.Email, items []model.ActionItem, fups []model.FollowUp) error {
	tx, err := a.emails.Pool().Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := a.emails.ApplyAnalysisTx(ctx, tx, e); err != nil {
		return err
	}
	for i := range items {
		if err := a.actions.InsertTx(ctx, tx, &items[i]); err != nil {
			return err
		}
	}
	for i := range fups {
		if err := a.followups.InsertTx(ctx, tx, &fups[i]); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// markFailed records the terminal failed state: a bounded diagnostic in the
// category and safe defaults everywhere else. Dark-pattern fields set before
// the model call are left intact.
func markFailed(e *model.Email, cause error) {
	msg := cause.Error()
	if len(msg) > maxDiagnosticLen {
		msg = msg[:maxDiagnosticLen]
	}
	e.Category = "Analysis Failed: " + msg
	e.Sentiment = "neutral"
	e.Emotion = "neutral"
	e.UrgencyScore = 5
	e.ConfidenceScore = 0
}
