package graph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailmind/internal/model"
)

func emailFrom(sender, subject, body, sentiment string, at time.Time) model.Email {
	return model.Email{
		Sender:     sender,
		Subject:    subject,
		Body:       body,
		Sentiment:  sentiment,
		ReceivedAt: at,
	}
}

func TestBuildAggregatesSender(t *testing.T) {
	now := time.Now()
	emails := []model.Email{
		emailFrom("Alice Chen <alice@acme.com>", "Project sprint update", "milestone on track", "positive", now.Add(-2*time.Hour)),
		emailFrom("Alice Chen <alice@acme.com>", "Budget invoice", "payment pending", "negative", now),
		emailFrom("bob@gmail.com", "hello", "just saying hi", "positive", now),
	}

	contacts := build(emails)
	require.Len(t, contacts, 2)

	alice := contacts["Alice Chen <alice@acme.com>"]
	require.NotNil(t, alice)
	assert.Equal(t, "Alice Chen", alice.Name)
	assert.Equal(t, "Acme", alice.Company)
	assert.Equal(t, 2, alice.InteractionCount)
	assert.ElementsMatch(t, []string{"project", "finance"}, alice.Topics)
	require.NotNil(t, alice.LastInteraction)
	assert.True(t, alice.LastInteraction.Equal(now))

	// freemail domain yields no company
	bob := contacts["bob@gmail.com"]
	require.NotNil(t, bob)
	assert.Empty(t, bob.Company)
}

func TestAvgSentimentMajorityVote(t *testing.T) {
	n := &ContactNode{SentimentHistory: []string{"positive", "positive", "negative"}}
	assert.Equal(t, "positive", n.AvgSentiment())

	n = &ContactNode{SentimentHistory: []string{"negative", "negative", "positive"}}
	assert.Equal(t, "negative", n.AvgSentiment())

	// ties favor neutral
	n = &ContactNode{SentimentHistory: []string{"positive", "negative"}}
	assert.Equal(t, "neutral", n.AvgSentiment())

	n = &ContactNode{}
	assert.Equal(t, "neutral", n.AvgSentiment())
}

func TestPriorityTiers(t *testing.T) {
	var emails []model.Email
	for i := 0; i < 10; i++ {
		emails = append(emails, emailFrom("vip@corp.example", "s", "b", "neutral", time.Now()))
	}
	for i := 0; i < 5; i++ {
		emails = append(emails, emailFrom("high@corp.example", "s", "b", "neutral", time.Now()))
	}
	emails = append(emails, emailFrom("normal@corp.example", "s", "b", "neutral", time.Now()))

	contacts := build(emails)
	assert.Equal(t, PriorityVIP, contacts["vip@corp.example"].PriorityLevel)
	assert.Equal(t, PriorityHigh, contacts["high@corp.example"].PriorityLevel)
	assert.Equal(t, PriorityNormal, contacts["normal@corp.example"].PriorityLevel)
}

func TestExtractTopicsDeterministicAndDeduplicated(t *testing.T) {
	topics := ExtractTopics("Sprint review meeting", "project milestone and standup notes")
	assert.Equal(t, []string{"meeting", "project"}, topics)

	assert.Empty(t, ExtractTopics("hello", "nothing relevant"))
}

func TestParseSender(t *testing.T) {
	name, addr, company := ParseSender("Dana Field <dana@globex.io>")
	assert.Equal(t, "Dana Field", name)
	assert.Equal(t, "dana@globex.io", addr)
	assert.Equal(t, "Globex", company)

	name, addr, company = ParseSender("plain@yahoo.com")
	assert.Empty(t, name)
	assert.Equal(t, "plain@yahoo.com", addr)
	assert.Empty(t, company)
}

func TestContextText(t *testing.T) {
	node := &ContactNode{
		Email:            "alice@acme.com",
		Name:             "Alice",
		Company:          "Acme",
		InteractionCount: 6,
		SentimentHistory: []string{"positive", "positive"},
		Topics:           []string{"project", "finance"},
		PriorityLevel:    PriorityHigh,
	}
	text := ContextText(node)
	assert.Contains(t, text, "Previous interactions: 6")
	assert.Contains(t, text, "Relationship sentiment: positive")
	assert.Contains(t, text, "Priority level: high")
	assert.Contains(t, text, "project, finance")
}

func TestContextTextEmptyForUnknownSender(t *testing.T) {
	assert.Empty(t, ContextText(nil))
	assert.Empty(t, ContextText(&ContactNode{Email: "new@corp.example"}))
}
