package compose

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"mailmind/internal/config"
	"mailmind/internal/llm"
	"mailmind/internal/model"
)

func TestBuildReplyPromptSubstitution(t *testing.T) {
	e := &model.Email{Subject: "Budget review", Body: "Please review the attached numbers."}
	tpl := "Draft a professional reply to the email below.\n\nSubject: {subject}\nBody: {body}"

	out := buildReplyPrompt(tpl, e, StyleParams{})
	assert.Contains(t, out, "Budget review")
	assert.Contains(t, out, "Please review the attached numbers.")
	assert.NotContains(t, out, "{body}")
	assert.NotContains(t, out, "{subject}")
}

func TestBuildReplyPromptStyleDirectives(t *testing.T) {
	e := &model.Email{Body: "b"}
	out := buildReplyPrompt("Draft a reply: {body}", e, StyleParams{
		Tone:         "friendly",
		Length:       "short",
		Instructions: "mention the Q4 numbers",
	})
	assert.Contains(t, out, "Tone: friendly")
	assert.Contains(t, out, "Length: short")
	assert.Contains(t, out, "Additional Instructions: mention the Q4 numbers")
}

func TestBuildSmartReplyPromptDefaultsContext(t *testing.T) {
	e := &model.Email{Sender: "a@b.c", Subject: "s", Body: "b"}
	out := buildSmartReplyPrompt(e, "", intentInstructions["acknowledge"])
	assert.Contains(t, out, "No previous history with this sender.")
	assert.Contains(t, out, "composing a reply")
	assert.Contains(t, out, intentInstructions["acknowledge"])
}

func TestSmartReplyPromptTriggersMockAcknowledgment(t *testing.T) {
	g := llm.NewGateway(config.LLMConfig{TimeoutSeconds: 5}, zap.NewNop())
	e := &model.Email{Sender: "a@b.c", Subject: "FYI", Body: "sharing this report"}

	prompt := buildSmartReplyPrompt(e, "", intentInstructions["default"])
	resp := g.Generate(context.Background(), prompt, false)
	assert.Contains(t, resp.Text, "Thank you for your email")
}

func TestIntentsCoverFixedSet(t *testing.T) {
	for _, intent := range Intents() {
		_, ok := intentInstructions[intent]
		assert.True(t, ok, "intent %q has no instruction", intent)
	}
}

func TestUnknownIntentRejected(t *testing.T) {
	_, ok := intentInstructions["escalate"]
	assert.False(t, ok)
}
