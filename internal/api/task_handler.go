package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mailmind/internal/repository"
)

// TaskHandler covers the client-managed lifecycles of action items and
// follow-ups. The backend only flips statuses; it never regenerates or
// auto-transitions them.
type TaskHandler struct {
	actions   *repository.ActionItemRepository
	followups *repository.FollowUpRepository
}

func NewTaskHandler(actions *repository.ActionItemRepository, followups *repository.FollowUpRepository) *TaskHandler {
	return &TaskHandler{actions: actions, followups: followups}
}

// ListFollowUps handles GET /followups
func (h *TaskHandler) ListFollowUps(c *gin.Context) {
	fups, err := h.followups.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list follow-ups"})
		return
	}
	c.JSON(http.StatusOK, fups)
}

// UpdateFollowUp handles PATCH /followups/:id
func (h *TaskHandler) UpdateFollowUp(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !validFollowUpStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	fup, err := h.followups.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrFollowUpNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Follow-up not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update follow-up"})
		return
	}
	c.JSON(http.StatusOK, fup)
}

// UpdateActionItem handles PATCH /action-items/:id
func (h *TaskHandler) UpdateActionItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !validActionItemStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	item, err := h.actions.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrActionItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Action item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update action item"})
		return
	}
	c.JSON(http.StatusOK, item)
}
