// Package llm wraps model providers behind one generate contract. Exactly one
// provider is selected at process start based on credential availability;
// when none is configured the deterministic mock responder serves every call.
package llm

import (
	"context"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"mailmind/internal/config"
	"mailmind/internal/pii"
	"mailmind/pkg/circuitbreaker"
	"mailmind/pkg/metrics"
)

// Origin reports which backend produced a response.
type Origin string

const (
	OriginOpenAI Origin = "openai"
	OriginGemini Origin = "gemini"
	OriginMock   Origin = "mock"
)

// FailKind lets callers pattern-match on what went wrong without parsing
// error text. Empty means the call succeeded.
type FailKind string

const (
	FailNone        FailKind = ""
	FailProvider    FailKind = "provider_error"
	FailCircuitOpen FailKind = "circuit_open"
)

// Response is the gateway's result type. The gateway never returns a Go
// error: downstream parsing must always receive some text, so failures are
// folded into the response with FailKind set and the mock fallback as Text.
type Response struct {
	Text     string
	Origin   Origin
	FailKind FailKind
}

// Gateway is a stateless service object, constructed once per process and
// passed explicitly to the orchestrator and composer.
type Gateway struct {
	client   *openai.Client // nil in mock mode
	model    string
	provider Origin
	breaker  *circuitbreaker.CircuitBreaker
	mock     mockResponder
	timeout  time.Duration
	logger   *zap.Logger
}

// NewGateway picks a provider by credential availability: OpenAI first, then
// Gemini through its OpenAI-compatible endpoint, else mock mode. The choice
// is static for the life of the process.
func NewGateway(cfg config.LLMConfig, logger *zap.Logger) *Gateway {
	g := &Gateway{
		provider: OriginMock,
		breaker:  circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig()),
		timeout:  time.Duration(cfg.TimeoutSeconds) * time.Second,
		logger:   logger,
	}
	switch {
	case cfg.OpenAIKey != "":
		g.client = openai.NewClient(cfg.OpenAIKey)
		g.model = cfg.OpenAIModel
		g.provider = OriginOpenAI
	case cfg.GeminiKey != "":
		cc := openai.DefaultConfig(cfg.GeminiKey)
		cc.BaseURL = cfg.GeminiBaseURL
		g.client = openai.NewClientWithConfig(cc)
		g.model = cfg.GeminiModel
		g.provider = OriginGemini
	default:
		logger.Warn("no provider API key configured, using mock responder")
	}
	return g
}

// Provider reports which backend this gateway was constructed with.
func (g *Gateway) Provider() Origin { return g.provider }

// Generate produces text for the prompt. PII is redacted before the prompt
// leaves the process. Provider failures fall back to the mock responder so
// the caller always has text to parse, with FailKind marking the failure.
func (g *Gateway) Generate(ctx context.Context, prompt string, jsonMode bool) Response {
	safe := pii.Redact(prompt)

	if g.provider == OriginMock {
		return Response{Text: g.mock.Generate(safe, jsonMode), Origin: OriginMock}
	}

	start := time.Now()
	var text string
	err := g.breaker.Execute(func() error {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		req := openai.ChatCompletionRequest{
			Model: g.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: safe},
			},
		}
		if jsonMode {
			req.ResponseFormat = &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			}
		}

		resp, callErr := g.client.CreateChatCompletion(callCtx, req)
		if callErr != nil {
			return callErr
		}
		if len(resp.Choices) == 0 {
			return errEmptyCompletion
		}
		text = resp.Choices[0].Message.Content
		return nil
	})

	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordLLMCallLatency(string(g.provider), "error", elapsed)
		g.logger.Error("provider call failed, falling back to mock",
			zap.String("provider", string(g.provider)),
			zap.Error(err))
		kind := FailProvider
		if err == circuitbreaker.ErrCircuitBreakerOpen {
			kind = FailCircuitOpen
		}
		return Response{Text: g.mock.Generate(safe, jsonMode), Origin: OriginMock, FailKind: kind}
	}

	metrics.RecordLLMCallLatency(string(g.provider), "success", elapsed)
	return Response{Text: text, Origin: g.provider}
}
