package mq

import "time"

// RoutingKeyAnalyzeRequested routes analysis dispatch events.
const RoutingKeyAnalyzeRequested = "email.analyze"

// AnalyzeRequestedPayload 分析请求事件的 payload
type AnalyzeRequestedPayload struct {
	EmailID     string    `json:"email_id"`
	RequestedAt time.Time `json:"requested_at"`
}
