package agent

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mailmind/internal/config"
	"mailmind/internal/darkpatterns"
	"mailmind/internal/llm"
	"mailmind/internal/model"
)

func newMockGateway() *llm.Gateway {
	return llm.NewGateway(config.LLMConfig{TimeoutSeconds: 5}, zap.NewNop())
}

// analyzeInMemory runs one analysis pass without storage: detection, mock
// gateway call, parse and field application.
func analyzeInMemory(t *testing.T, e *model.Email) (analysisResult, []model.ActionItem, []model.FollowUp) {
	t.Helper()

	dp := darkpatterns.Detect(e.Subject, e.Body)
	e.HasDarkPatterns = dp.HasPatterns
	e.DarkPatterns = dp.Patterns
	e.DarkPatternSeverity = dp.Severity

	resp := newMockGateway().Generate(context.Background(), buildAnalysisPrompt(e), true)
	res, err := parseAnalysis(resp.Text)
	require.NoError(t, err)
	apply(e, res)
	items, fups := childRecords(e.ID, res)
	return res, items, fups
}

func TestAnalyzeUrgentEmailEndToEnd(t *testing.T) {
	e := &model.Email{
		ID:      "e-1",
		Sender:  "boss@corp.example",
		Subject: "URGENT: Q4 Report Due",
		Body:    "Need it by 5 PM today, click bit.ly/xyz for the template",
	}
	analyzeInMemory(t, e)

	assert.Equal(t, string(model.CategoryWorkImportant), e.Category)
	assert.GreaterOrEqual(t, e.UrgencyScore, 8)
	assert.True(t, e.HasDarkPatterns)
	assert.NotEmpty(t, e.DarkPatterns)
	assert.Contains(t, []string{darkpatterns.SeverityMedium, darkpatterns.SeverityHigh}, e.DarkPatternSeverity)
}

func TestAnalyzeIsDeterministicInMockMode(t *testing.T) {
	mk := func() *model.Email {
		return &model.Email{ID: "e-2", Sender: "a@b.c", Subject: "Team sync tomorrow", Body: "Agenda attached."}
	}
	first := mk()
	second := mk()
	analyzeInMemory(t, first)
	analyzeInMemory(t, second)

	assert.Equal(t, first.Category, second.Category)
	assert.Equal(t, first.Sentiment, second.Sentiment)
	assert.Equal(t, first.UrgencyScore, second.UrgencyScore)
}

func TestAnalyzeCategoryAlwaysSet(t *testing.T) {
	bodies := []string{"hello", "urgent deadline", "your invoice", "free prize winner", ""}
	for _, body := range bodies {
		e := &model.Email{ID: "e-3", Sender: "a@b.c", Subject: "s", Body: body}
		analyzeInMemory(t, e)
		assert.NotEmpty(t, e.Category, "body %q", body)
		assert.NotEqual(t, "Uncategorized", e.Category, "body %q", body)
	}
}

func TestDarkPatternsSurviveModelFailure(t *testing.T) {
	e := &model.Email{
		ID:      "e-4",
		Sender:  "scam@bad.example",
		Subject: "URGENT!!! you've won",
		Body:    "Claim your prize now at bit.ly/win before it expires!",
	}
	dp := darkpatterns.Detect(e.Subject, e.Body)
	e.HasDarkPatterns = dp.HasPatterns
	e.DarkPatterns = dp.Patterns
	e.DarkPatternSeverity = dp.Severity

	// model output is garbage; parse fails and the email goes terminal
	_, err := parseAnalysis("the model returned prose with no structure")
	require.Error(t, err)
	markFailed(e, err)

	assert.Equal(t, darkpatterns.SeverityHigh, e.DarkPatternSeverity)
	assert.NotEmpty(t, e.DarkPatterns)
	assert.Contains(t, e.Category, "Analysis Failed:")
	assert.Equal(t, "neutral", e.Sentiment)
	assert.Equal(t, 5, e.UrgencyScore)
}

func TestMarkFailedBoundsDiagnostic(t *testing.T) {
	e := &model.Email{ID: "e-5"}
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'x'
	}
	markFailed(e, &textError{string(long)})
	assert.LessOrEqual(t, len(e.Category), len("Analysis Failed: ")+maxDiagnosticLen)
}

type textError struct{ s string }

func (e *textError) Error() string { return e.s }

func TestParseAnalysisDirect(t *testing.T) {
	res, err := parseAnalysis(`{"category": "Finance", "sentiment": "neutral", "urgency_score": 6}`)
	require.NoError(t, err)
	assert.Equal(t, "Finance", res.Category)
	require.NotNil(t, res.UrgencyScore)
	assert.Equal(t, 6, *res.UrgencyScore)
}

func TestParseAnalysisExtractsEmbeddedObject(t *testing.T) {
	text := "Sure! Here is the analysis you asked for:\n```json\n" +
		`{"category": "Personal", "category_reasoning": "a {brace} inside a string", "urgency_score": 2}` +
		"\n```\nLet me know if you need anything else."
	res, err := parseAnalysis(text)
	require.NoError(t, err)
	assert.Equal(t, "Personal", res.Category)
}

func TestParseAnalysisRejectsProse(t *testing.T) {
	_, err := parseAnalysis("no structured content here at all")
	assert.Error(t, err)
}

func TestApplyDefensiveDefaults(t *testing.T) {
	e := &model.Email{ID: "e-6"}
	apply(e, analysisResult{})

	assert.Equal(t, model.CategoryMissing, e.Category)
	assert.Equal(t, "neutral", e.Sentiment)
	assert.Equal(t, "neutral", e.Emotion)
	assert.Equal(t, 5, e.UrgencyScore)
}

func TestApplyUnknownCategoryIsVisible(t *testing.T) {
	e := &model.Email{ID: "e-7"}
	apply(e, analysisResult{Category: "Totally Made Up"})
	assert.Equal(t, "(Unknown Category: Totally Made Up)", e.Category)
	assert.NotEqual(t, model.CategoryMissing, e.Category)
}

func TestApplyUnknownCategoryValueIsBounded(t *testing.T) {
	e := &model.Email{ID: "e-7b"}
	apply(e, analysisResult{Category: strings.Repeat("x", 500)})
	assert.LessOrEqual(t, len(e.Category), len("(Unknown Category: )")+40)
	assert.Contains(t, e.Category, "(Unknown Category: ")
}

func TestApplyClampsUrgency(t *testing.T) {
	e := &model.Email{ID: "e-8"}
	score := 42
	apply(e, analysisResult{UrgencyScore: &score})
	assert.Equal(t, 10, e.UrgencyScore)
}

func TestDeadlineMalformedISOKeepsText(t *testing.T) {
	e := &model.Email{ID: "e-9"}
	text := "by Friday EOD"
	iso := "not-a-date"
	apply(e, analysisResult{
		Category: "Work: Important",
		Deadline: &deadlineResult{HasDeadline: true, DeadlineText: &text, DeadlineISO: &iso},
	})

	require.NotNil(t, e.DeadlineText)
	assert.Equal(t, "by Friday EOD", *e.DeadlineText)
	assert.Nil(t, e.DeadlineAt)
}

func TestDeadlineValidISO(t *testing.T) {
	e := &model.Email{ID: "e-10"}
	text := "by Jan 15"
	iso := "2026-01-15T17:00:00Z"
	apply(e, analysisResult{
		Deadline: &deadlineResult{HasDeadline: true, DeadlineText: &text, DeadlineISO: &iso},
	})

	require.NotNil(t, e.DeadlineAt)
	assert.Equal(t, time.Date(2026, 1, 15, 17, 0, 0, 0, time.UTC), e.DeadlineAt.UTC())
}

func TestDeadlineDateOnlyISO(t *testing.T) {
	e := &model.Email{ID: "e-11"}
	iso := "2026-02-01"
	apply(e, analysisResult{
		Deadline: &deadlineResult{HasDeadline: true, DeadlineISO: &iso},
	})
	require.NotNil(t, e.DeadlineAt)
}

func TestDeadlineAbsentLeavesFieldsUnset(t *testing.T) {
	e := &model.Email{ID: "e-12"}
	apply(e, analysisResult{Deadline: &deadlineResult{HasDeadline: false}})
	assert.Nil(t, e.DeadlineAt)
	assert.Nil(t, e.DeadlineText)
}

func TestChildRecordsAppendAcrossRuns(t *testing.T) {
	res := analysisResult{
		ActionItems: []actionItemResult{
			{Description: "Review report"},
			{Description: "Send summary"},
		},
	}

	// two passes over the same email never merge: children accumulate
	var stored []model.ActionItem
	for i := 0; i < 2; i++ {
		items, _ := childRecords("e-13", res)
		stored = append(stored, items...)
	}
	assert.Len(t, stored, 4)
}

func TestChildRecordsDefaults(t *testing.T) {
	items, fups := childRecords("e-14", analysisResult{
		ActionItems: []actionItemResult{{Description: ""}},
		Followups: []followupResult{
			{Commitment: "Send Q4 report", CommittedBy: ""},
			{Commitment: ""}, // dropped
		},
	})

	require.Len(t, items, 1)
	assert.Equal(t, "Unknown task", items[0].Description)
	assert.Equal(t, model.ActionItemPending, items[0].Status)

	require.Len(t, fups, 1)
	assert.Equal(t, "me", fups[0].CommittedBy)
	assert.Equal(t, model.FollowUpPending, fups[0].Status)
}

func TestPromptContainsContract(t *testing.T) {
	e := &model.Email{Subject: "Budget review", Sender: "cfo@corp.example", Body: "Numbers attached."}
	p := buildAnalysisPrompt(e)

	assert.Contains(t, p, "Analyze this email")
	assert.Contains(t, p, "Budget review")
	assert.Contains(t, p, "cfo@corp.example")
	for _, c := range model.AllCategories() {
		assert.Contains(t, p, string(c))
	}
	assert.Contains(t, p, "never \"Uncategorized\"")
	assert.Contains(t, p, "Return ONLY the JSON object")
}
