package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"mailmind/internal/llm"
	"mailmind/internal/model"
	"mailmind/internal/repository"
)

// PromptHandler manages the editable prompt templates and the playground.
type PromptHandler struct {
	prompts *repository.PromptRepository
	emails  *repository.EmailRepository
	gateway *llm.Gateway
}

func NewPromptHandler(prompts *repository.PromptRepository, emails *repository.EmailRepository, gateway *llm.Gateway) *PromptHandler {
	return &PromptHandler{prompts: prompts, emails: emails, gateway: gateway}
}

// List handles GET /prompts
func (h *PromptHandler) List(c *gin.Context) {
	prompts, err := h.prompts.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list prompts"})
		return
	}
	c.JSON(http.StatusOK, prompts)
}

// Create handles POST /prompts
func (h *PromptHandler) Create(c *gin.Context) {
	var req struct {
		Name       string `json:"name" binding:"required"`
		Template   string `json:"template" binding:"required"`
		PromptType string `json:"prompt_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p := &model.Prompt{Name: req.Name, Template: req.Template, PromptType: req.PromptType}
	if err := h.prompts.Create(c.Request.Context(), p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create prompt"})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Update handles PUT /prompts/:id
func (h *PromptHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		Name       string `json:"name" binding:"required"`
		Template   string `json:"template" binding:"required"`
		PromptType string `json:"prompt_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p := &model.Prompt{ID: id, Name: req.Name, Template: req.Template, PromptType: req.PromptType}
	if err := h.prompts.Update(c.Request.Context(), p); err != nil {
		if errors.Is(err, repository.ErrPromptNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Prompt not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update prompt"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// PlaygroundTest handles POST /playground/test: runs an arbitrary template
// against a stored email without persisting anything.
func (h *PromptHandler) PlaygroundTest(c *gin.Context) {
	var req struct {
		EmailID  string `json:"email_id" binding:"required"`
		Template string `json:"template" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	e, err := h.emails.GetByID(c.Request.Context(), req.EmailID)
	if err != nil {
		if errors.Is(err, repository.ErrEmailNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Email not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch email"})
		return
	}

	prompt := strings.NewReplacer(
		"{subject}", e.Subject,
		"{body}", e.Body,
		"{sender}", e.Sender,
	).Replace(req.Template)

	resp := h.gateway.Generate(c.Request.Context(), prompt, false)
	c.JSON(http.StatusOK, gin.H{"response": resp.Text, "origin": resp.Origin})
}
