package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LLM 调用延迟（毫秒）
	LLMCallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_call_latency_ms",
			Help:    "LLM provider call latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10), // 100ms to ~100s
		},
		[]string{"provider", "status"},
	)

	// 分析耗时（秒）
	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analysis_duration_seconds",
			Help:    "Full email analysis pass duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		},
		[]string{"status"},
	)

	// HTTP 请求延迟（秒）
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// 邮件处理计数
	EmailProcessedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_processed_count",
			Help: "Total number of emails analyzed",
		},
		[]string{"status"}, // status: analyzed, failed
	)

	// 草稿生成计数
	DraftGeneratedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "draft_generated_count",
			Help: "Total number of reply drafts generated",
		},
		[]string{"kind"}, // kind: draft, smart_reply, auto_reply
	)
)

// RecordLLMCallLatency 记录 LLM 调用延迟
func RecordLLMCallLatency(provider, status string, duration time.Duration) {
	LLMCallLatency.WithLabelValues(provider, status).Observe(float64(duration.Milliseconds()))
}

// RecordAnalysisDuration 记录分析耗时
func RecordAnalysisDuration(status string, duration time.Duration) {
	AnalysisDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordHTTPRequestDuration 记录 HTTP 请求延迟
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementEmailProcessed 增加邮件处理计数
func IncrementEmailProcessed(status string) {
	EmailProcessedCount.WithLabelValues(status).Inc()
}

// IncrementDraftGenerated 增加草稿生成计数
func IncrementDraftGenerated(kind string) {
	DraftGeneratedCount.WithLabelValues(kind).Inc()
}
