package api

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mailmind/pkg/metrics"
	"mailmind/pkg/mq"
	"mailmind/pkg/trace"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	inboxHandler *InboxHandler,
	agentHandler *AgentHandler,
	agenticHandler *AgenticHandler,
	taskHandler *TaskHandler,
	promptHandler *PromptHandler,
	analyticsHandler *AnalyticsHandler,
	meetingHandler *MeetingHandler,
	db *pgxpool.Pool,
	publisher *mq.Publisher,
) *Router {
	r := gin.Default()
	r.Use(traceMiddleware(), metricsMiddleware())

	// Health endpoints (放在最前面)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})
	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}
		if !publisher.IsConnected() {
			c.JSON(500, gin.H{"status": "mq_not_ready"})
			return
		}
		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	inbox := r.Group("/inbox")
	{
		inbox.POST("/load", inboxHandler.Load)
		inbox.POST("/simulate", inboxHandler.Simulate)
		inbox.GET("", inboxHandler.List)
		inbox.GET("/:id", inboxHandler.Get)
		inbox.DELETE("/:id", inboxHandler.Delete)
		inbox.PATCH("/:id/read", inboxHandler.MarkRead)
	}

	agent := r.Group("/agent")
	{
		agent.POST("/process/:id", agentHandler.Process)
		agent.POST("/process-all", agentHandler.ProcessAll)
		agent.POST("/chat", agentHandler.Chat)
		agent.POST("/draft", agentHandler.Draft)
	}

	meetings := r.Group("/meetings")
	{
		meetings.GET("", meetingHandler.List)
		meetings.POST("/:id/brief", meetingHandler.Brief)
	}

	agentic := r.Group("/agentic")
	{
		agentic.GET("/actions/:id", agenticHandler.Actions)
		agentic.POST("/execute", agenticHandler.Execute)
		agentic.POST("/smart-reply", agenticHandler.SmartReply)
		agentic.GET("/intents", agenticHandler.Intents)
	}

	r.GET("/followups", taskHandler.ListFollowUps)
	r.PATCH("/followups/:id", taskHandler.UpdateFollowUp)
	r.PATCH("/action-items/:id", taskHandler.UpdateActionItem)

	prompts := r.Group("/prompts")
	{
		prompts.GET("", promptHandler.List)
		prompts.POST("", promptHandler.Create)
		prompts.PUT("/:id", promptHandler.Update)
	}
	r.POST("/playground/test", promptHandler.PlaygroundTest)

	analytics := r.Group("/analytics")
	{
		analytics.GET("/dashboard", analyticsHandler.Dashboard)
		analytics.GET("/contacts", analyticsHandler.Contacts)
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}

// traceMiddleware propagates or generates the request trace id.
func traceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(trace.HeaderName())
		if traceID == "" {
			traceID = trace.GenerateTraceID()
		}
		c.Request = c.Request.WithContext(trace.WithContext(c.Request.Context(), traceID))
		c.Header(trace.HeaderName(), traceID)
		c.Next()
	}
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequestDuration(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
