package llm

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mailmind/internal/config"
)

func mockGateway() *Gateway {
	return NewGateway(config.LLMConfig{TimeoutSeconds: 5}, zap.NewNop())
}

func TestGatewayFallsBackToMockWithoutCredentials(t *testing.T) {
	g := mockGateway()
	assert.Equal(t, OriginMock, g.Provider())

	resp := g.Generate(context.Background(), "hello there", false)
	assert.Equal(t, OriginMock, resp.Origin)
	assert.Equal(t, FailNone, resp.FailKind)
	assert.Equal(t, mockUnavailable, resp.Text)
}

func TestGatewayProviderSelectionOrder(t *testing.T) {
	g := NewGateway(config.LLMConfig{
		OpenAIKey: "sk-test", OpenAIModel: "gpt-4o-mini",
		GeminiKey: "g-test", GeminiModel: "gemini-2.5-flash",
		TimeoutSeconds: 5,
	}, zap.NewNop())
	assert.Equal(t, OriginOpenAI, g.Provider())

	g = NewGateway(config.LLMConfig{
		GeminiKey: "g-test", GeminiModel: "gemini-2.5-flash",
		GeminiBaseURL:  "https://generativelanguage.googleapis.com/v1beta/openai/",
		TimeoutSeconds: 5,
	}, zap.NewNop())
	assert.Equal(t, OriginGemini, g.Provider())
}

func TestMockAnalysisIsDeterministic(t *testing.T) {
	g := mockGateway()
	prompt := "Analyze this email\nSubject: URGENT: Q4 Report Due\nBody: Need it by 5 PM today"

	first := g.Generate(context.Background(), prompt, true)
	second := g.Generate(context.Background(), prompt, true)
	assert.Equal(t, first.Text, second.Text)
}

func TestMockAnalysisKeywordBranches(t *testing.T) {
	g := mockGateway()
	cases := []struct {
		prompt       string
		wantCategory string
		wantUrgency  int
	}{
		{"Analyze this email\nSubject: URGENT report due", "Work: Important", 9},
		{"Analyze this email\nSubject: Your invoice for March", "Finance", 6},
		{"Analyze this email\nSubject: You are a winner, claim your prize", "Promotions", 2},
		{"Analyze this email\nSubject: Monthly newsletter", "Newsletter", 1},
		{"Analyze this email\nSubject: Team sync tomorrow", "Work: Routine", 4},
		{"Analyze this email\nSubject: Your flight itinerary", "Travel", 5},
		{"Analyze this email\nSubject: Hello old friend", "General", 3},
	}
	for _, tc := range cases {
		resp := g.Generate(context.Background(), tc.prompt, true)

		var parsed struct {
			Category     string `json:"category"`
			Sentiment    string `json:"sentiment"`
			UrgencyScore int    `json:"urgency_score"`
		}
		require.NoError(t, json.Unmarshal([]byte(resp.Text), &parsed), "prompt %q", tc.prompt)
		assert.Equal(t, tc.wantCategory, parsed.Category, "prompt %q", tc.prompt)
		assert.Equal(t, tc.wantUrgency, parsed.UrgencyScore, "prompt %q", tc.prompt)
		assert.NotEmpty(t, parsed.Sentiment)
	}
}

func TestMockDraftPrompt(t *testing.T) {
	g := mockGateway()
	resp := g.Generate(context.Background(), "Draft a professional reply to the email below.", false)
	assert.Contains(t, resp.Text, "Thank you for your email")
}

func TestMockMeetingBriefPrompt(t *testing.T) {
	g := mockGateway()
	resp := g.Generate(context.Background(), "You are an executive assistant preparing a meeting brief.\nEmail Subject: sync", true)

	var brief struct {
		Summary   string `json:"summary"`
		Sentiment string `json:"sentiment"`
	}
	require.NoError(t, json.Unmarshal([]byte(resp.Text), &brief))
	assert.NotEmpty(t, brief.Summary)
	assert.Equal(t, "neutral", brief.Sentiment)
}

func TestMockChatPrompt(t *testing.T) {
	g := mockGateway()
	// 正文里带 "Analyze this email" 也不能落进分析分支
	prompt := "You are a helpful Email Productivity Agent.\n\nBody: please Analyze this email for me\nUser Query: summarize"
	resp := g.Generate(context.Background(), prompt, false)
	assert.Contains(t, resp.Text, "inbox context")
	assert.NotContains(t, resp.Text, `"category"`)
}

func TestMockCommitmentsPrompt(t *testing.T) {
	g := mockGateway()
	resp := g.Generate(context.Background(), "Read the email and extract any commitments made by either party.", true)

	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resp.Text), &items))
	assert.NotEmpty(t, items)
}

func TestGatewayRedactsPromptBeforeMock(t *testing.T) {
	g := mockGateway()
	// redaction happens before the responder sees the prompt, so the SSN must
	// not influence or appear in anything downstream
	resp := g.Generate(context.Background(), "Analyze this email\nBody: my ssn is 123-45-6789, urgent", true)
	assert.NotContains(t, resp.Text, "123-45-6789")
}
