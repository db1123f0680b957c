package mqhandler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	mqcontracts "mailmind/contracts/mq"
	"mailmind/internal/agent"
	"mailmind/internal/repository"
	"mailmind/pkg/util"
)

// AnalyzeRequestedHandler consumes email.analyze events and runs one
// analysis pass per event.
type AnalyzeRequestedHandler struct {
	analyzer *agent.Analyzer
	deduper  *util.Deduper
	logger   *zap.Logger
}

func NewAnalyzeRequestedHandler(analyzer *agent.Analyzer, deduper *util.Deduper, logger *zap.Logger) *AnalyzeRequestedHandler {
	return &AnalyzeRequestedHandler{analyzer: analyzer, deduper: deduper, logger: logger}
}

func (h *AnalyzeRequestedHandler) Handle(ctx context.Context, raw json.RawMessage) error {
	var p mqcontracts.AnalyzeRequestedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("Failed to unmarshal AnalyzeRequestedPayload", zap.Error(err))
		// 坏消息没有重试价值，ack 掉
		return nil
	}
	if p.EmailID == "" {
		h.logger.Error("Empty email_id in email.analyze event")
		return nil
	}

	// 幂等性检查：同一封邮件的并发事件只处理一次
	if !h.deduper.AcquireOnce(ctx, "analyze", p.EmailID) {
		h.logger.Info("Duplicate email.analyze event skipped", zap.String("email_id", p.EmailID))
		return nil
	}
	defer h.deduper.Release(ctx, "analyze", p.EmailID)

	h.logger.Info("Handling email.analyze event", zap.String("email_id", p.EmailID))

	_, err := h.analyzer.Analyze(ctx, p.EmailID)
	if err != nil {
		if errors.Is(err, repository.ErrEmailNotFound) {
			// 邮件已删除，事件作废
			h.logger.Warn("Email vanished before analysis", zap.String("email_id", p.EmailID))
			return nil
		}
		// 分析本身没有重试语义：一次失败即终态。只有存储层写入失败
		// 才值得重投。
		retryable, kind := util.IsRetryableError(err)
		if retryable {
			return fmt.Errorf("analyze email %s: %w", p.EmailID, err)
		}
		h.logger.Error("Terminal analysis failure, acking event",
			zap.String("email_id", p.EmailID),
			zap.String("kind", kind),
			zap.Error(err))
		return nil
	}

	h.logger.Info("Analysis pass committed", zap.String("email_id", p.EmailID))
	return nil
}
