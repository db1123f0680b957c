package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mailmind/internal/agentic"
	"mailmind/internal/compose"
	"mailmind/internal/repository"
)

// AgenticHandler surfaces suggested actions and smart replies.
type AgenticHandler struct {
	executor *agentic.Executor
	composer *compose.Composer
}

func NewAgenticHandler(executor *agentic.Executor, composer *compose.Composer) *AgenticHandler {
	return &AgenticHandler{executor: executor, composer: composer}
}

// Actions handles GET /agentic/actions/:id
func (h *AgenticHandler) Actions(c *gin.Context) {
	actions, err := h.executor.Suggest(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrEmailNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Email not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to suggest actions"})
		return
	}
	if actions == nil {
		actions = []agentic.SuggestedAction{}
	}
	c.JSON(http.StatusOK, gin.H{"actions": actions})
}

// Execute handles POST /agentic/execute
func (h *AgenticHandler) Execute(c *gin.Context) {
	var req struct {
		ActionType string         `json:"action_type" binding:"required"`
		Params     map[string]any `json:"params"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := h.executor.Execute(c.Request.Context(), req.ActionType, req.Params)
	if err != nil {
		if errors.Is(err, repository.ErrEmailNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Email not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to execute action"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// SmartReply handles POST /agentic/smart-reply
func (h *AgenticHandler) SmartReply(c *gin.Context) {
	var req struct {
		EmailID string `json:"email_id" binding:"required"`
		Intent  string `json:"intent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	draft, err := h.composer.SmartReply(c.Request.Context(), req.EmailID, req.Intent)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Email not found"})
		case errors.Is(err, compose.ErrUnknownIntent):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown intent"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate reply"})
		}
		return
	}
	c.JSON(http.StatusOK, draft)
}

// Intents handles GET /agentic/intents
func (h *AgenticHandler) Intents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"intents": compose.Intents()})
}
