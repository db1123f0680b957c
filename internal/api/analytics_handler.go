package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mailmind/internal/graph"
	"mailmind/internal/service"
)

type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	graph     *graph.Builder
}

func NewAnalyticsHandler(analytics *service.AnalyticsService, graphBuilder *graph.Builder) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, graph: graphBuilder}
}

// Dashboard handles GET /analytics/dashboard
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	stats, err := h.analytics.DashboardStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Contacts handles GET /analytics/contacts: the relationship view, rebuilt
// from a full scan on every request.
func (h *AnalyticsHandler) Contacts(c *gin.Context) {
	contacts, err := h.graph.Contacts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build contact graph"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}
