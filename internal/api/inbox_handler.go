package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mailmind/internal/repository"
	"mailmind/internal/service"
)

type InboxHandler struct {
	inbox       *service.InboxService
	inboxPath   string
	promptsPath string
}

func NewInboxHandler(inbox *service.InboxService, inboxPath, promptsPath string) *InboxHandler {
	return &InboxHandler{inbox: inbox, inboxPath: inboxPath, promptsPath: promptsPath}
}

// Load handles POST /inbox/load
func (h *InboxHandler) Load(c *gin.Context) {
	if err := h.inbox.Seed(c.Request.Context(), h.inboxPath, h.promptsPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load inbox"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inbox loaded successfully"})
}

// Simulate handles POST /inbox/simulate
func (h *InboxHandler) Simulate(c *gin.Context) {
	var req struct {
		Sender  string `json:"sender" binding:"required"`
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	e, err := h.inbox.Simulate(c.Request.Context(), req.Sender, req.Subject, req.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to ingest email"})
		return
	}
	c.JSON(http.StatusCreated, e)
}

// List handles GET /inbox
func (h *InboxHandler) List(c *gin.Context) {
	var q struct {
		Skip  int `form:"skip"`
		Limit int `form:"limit"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query"})
		return
	}
	emails, err := h.inbox.List(c.Request.Context(), q.Skip, q.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list emails"})
		return
	}
	c.JSON(http.StatusOK, emails)
}

// Get handles GET /inbox/:id
func (h *InboxHandler) Get(c *gin.Context) {
	e, err := h.inbox.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrEmailNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Email not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch email"})
		return
	}
	c.JSON(http.StatusOK, e)
}

// Delete handles DELETE /inbox/:id
func (h *InboxHandler) Delete(c *gin.Context) {
	if err := h.inbox.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrEmailNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Email not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete email"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email deleted"})
}

// MarkRead handles PATCH /inbox/:id/read
func (h *InboxHandler) MarkRead(c *gin.Context) {
	var req struct {
		IsRead bool `json:"is_read"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := h.inbox.MarkRead(c.Request.Context(), c.Param("id"), req.IsRead); err != nil {
		if errors.Is(err, repository.ErrEmailNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Email not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update email"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email updated"})
}
