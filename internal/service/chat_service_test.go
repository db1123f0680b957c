package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailmind/internal/model"
)

func TestRecentInboxContextFormat(t *testing.T) {
	emails := []model.Email{
		{
			ID: "e-1", Sender: "bob@corp.example", Subject: "Standup notes",
			Body:       "Short summary of today.",
			ReceivedAt: time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC),
			Category:   "Work: Routine",
		},
	}

	ctx := recentInboxContext(emails)
	assert.True(t, strings.HasPrefix(ctx, "Here are the recent emails in the user's inbox:"))
	assert.Contains(t, ctx, "ID: e-1")
	assert.Contains(t, ctx, "Sender: bob@corp.example")
	assert.Contains(t, ctx, "Category: Work: Routine")
	assert.Contains(t, ctx, "End of emails.")
}

func TestRecentInboxContextEmpty(t *testing.T) {
	assert.Equal(t, "", recentInboxContext(nil))
}

func TestBodySnippetTruncatesLongBodies(t *testing.T) {
	long := strings.Repeat("a", 500)
	got := bodySnippet(long)
	assert.Equal(t, 200+len("..."), len(got))
	assert.True(t, strings.HasSuffix(got, "..."))

	short := "fits as is"
	assert.Equal(t, short, bodySnippet(short))
}

func TestBodySnippetKeepsRunesIntact(t *testing.T) {
	long := strings.Repeat("汉", 100) // 3 bytes each, boundary falls mid-rune
	got := bodySnippet(long)
	require.True(t, strings.HasSuffix(got, "..."))
	for _, r := range got {
		assert.NotEqual(t, '�', r)
	}
}

func TestBuildChatPromptEmbedsContextAndQuery(t *testing.T) {
	p := buildChatPrompt("Context Email:\nSender: x\n\n", "what is urgent today?")
	assert.Contains(t, p, "Email Productivity Agent")
	assert.Contains(t, p, "Context Email:")
	assert.Contains(t, p, "User Query: what is urgent today?")
	assert.True(t, strings.HasSuffix(p, "Agent Response:"))
}
