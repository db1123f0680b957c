package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mqcontracts "mailmind/contracts/mq"
	"mailmind/internal/compose"
	"mailmind/internal/repository"
	"mailmind/internal/service"
	"mailmind/pkg/mq"
)

// processAllBatchLimit caps how many emails one process-all request
// dispatches.
const processAllBatchLimit = 20

// AgentHandler dispatches analysis work, answers chat queries and composes
// drafts.
type AgentHandler struct {
	inbox     *service.InboxService
	chat      *service.ChatService
	composer  *compose.Composer
	publisher *mq.Publisher
	logger    *zap.Logger
}

func NewAgentHandler(inbox *service.InboxService, chat *service.ChatService, composer *compose.Composer, publisher *mq.Publisher, logger *zap.Logger) *AgentHandler {
	return &AgentHandler{inbox: inbox, chat: chat, composer: composer, publisher: publisher, logger: logger}
}

// Process handles POST /agent/process/:id. The analysis runs in the worker;
// this endpoint only verifies the email exists and publishes the event.
func (h *AgentHandler) Process(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.inbox.Get(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrEmailNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Email not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch email"})
		return
	}

	if err := h.publishAnalyze(id); err != nil {
		h.logger.Error("Failed to publish email.analyze", zap.String("email_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to dispatch analysis"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Processing started", "email_id": id})
}

// ProcessAll handles POST /agent/process-all
func (h *AgentHandler) ProcessAll(c *gin.Context) {
	emails, err := h.inbox.List(c.Request.Context(), 0, processAllBatchLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list emails"})
		return
	}

	dispatched := 0
	for i := range emails {
		if err := h.publishAnalyze(emails[i].ID); err != nil {
			h.logger.Error("Failed to publish email.analyze",
				zap.String("email_id", emails[i].ID), zap.Error(err))
			continue
		}
		dispatched++
	}
	c.JSON(http.StatusOK, gin.H{"message": "Batch processing started", "dispatched": dispatched})
}

// Chat handles POST /agent/chat
func (h *AgentHandler) Chat(c *gin.Context) {
	var req struct {
		Query   string `json:"query" binding:"required"`
		EmailID string `json:"email_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	text, origin, err := h.chat.Chat(c.Request.Context(), req.Query, req.EmailID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to answer query"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": text, "origin": origin})
}

// Draft handles POST /agent/draft
func (h *AgentHandler) Draft(c *gin.Context) {
	var req struct {
		EmailID      string `json:"email_id" binding:"required"`
		Instructions string `json:"instructions"`
		Tone         string `json:"tone"`
		Length       string `json:"length"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	draft, err := h.composer.Compose(c.Request.Context(), req.EmailID, compose.StyleParams{
		Tone:         req.Tone,
		Length:       req.Length,
		Instructions: req.Instructions,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Email not found"})
		case errors.Is(err, compose.ErrNoReplyTemplate):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not generate draft"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compose draft"})
		}
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *AgentHandler) publishAnalyze(emailID string) error {
	return h.publisher.Publish(mqcontracts.RoutingKeyAnalyzeRequested, mqcontracts.AnalyzeRequestedPayload{
		EmailID:     emailID,
		RequestedAt: time.Now().UTC(),
	})
}
