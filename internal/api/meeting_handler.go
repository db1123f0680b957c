package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mailmind/internal/repository"
	"mailmind/internal/service"
)

type MeetingHandler struct {
	meetings *service.MeetingService
}

func NewMeetingHandler(meetings *service.MeetingService) *MeetingHandler {
	return &MeetingHandler{meetings: meetings}
}

// List handles GET /meetings
func (h *MeetingHandler) List(c *gin.Context) {
	meetings, err := h.meetings.Upcoming(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to scan for meetings"})
		return
	}
	c.JSON(http.StatusOK, meetings)
}

// Brief handles POST /meetings/:id/brief
func (h *MeetingHandler) Brief(c *gin.Context) {
	brief, err := h.meetings.Brief(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrEmailNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meeting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate brief"})
		return
	}
	c.JSON(http.StatusOK, brief)
}
