package darkpatterns

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectCleanEmail(t *testing.T) {
	res := Detect("Weekly sync notes", "Here are the notes from this week. Let me know if I missed anything.")
	assert.False(t, res.HasPatterns)
	assert.Empty(t, res.Patterns)
	assert.Equal(t, SeverityNone, res.Severity)
	assert.Empty(t, res.Warnings)
}

func TestDetectFakeUrgency(t *testing.T) {
	res := Detect("Please respond", "This is urgent, we need your answer today.")
	assert.True(t, res.HasPatterns)
	assert.Contains(t, res.Patterns, PatternFakeUrgency)
	assert.Equal(t, SeverityLow, res.Severity)
}

func TestDetectExcessiveCapsSubjectOnly(t *testing.T) {
	res := Detect("WINNING offer inside", "nothing special here")
	assert.Contains(t, res.Patterns, PatternExcessiveCaps)

	// caps in the body alone do not trigger the rule
	res = Detect("quiet subject", "SHOUTING in the body only")
	assert.NotContains(t, res.Patterns, PatternExcessiveCaps)
}

func TestDetectExclamationThresholds(t *testing.T) {
	res := Detect("Wow!!!", "fine")
	assert.Contains(t, res.Patterns, PatternExclamation)

	res = Detect("Wow!!", "ok! sure! great! nice!")
	assert.NotContains(t, res.Patterns, PatternExclamation)

	res = Detect("calm", "a! b! c! d! e!")
	assert.Contains(t, res.Patterns, PatternExclamation)
}

func TestDetectShortenedLinks(t *testing.T) {
	res := Detect("Check this", "Details at https://bit.ly/3xyz")
	assert.Contains(t, res.Patterns, PatternShortenedLinks)
}

func TestDetectPressureTactics(t *testing.T) {
	res := Detect("Notice", "Your account will be suspended unless you confirm your identity.")
	assert.Contains(t, res.Patterns, PatternPressureTactics)
}

func TestDetectHiddenUnsubscribe(t *testing.T) {
	body := strings.Repeat("Lots of promotional content here. ", 40) + "unsubscribe"
	res := Detect("Deals", body)
	assert.Contains(t, res.Patterns, PatternHiddenUnsubscribe)

	// unsubscribe near the top is fine
	res = Detect("Deals", "unsubscribe "+strings.Repeat("Lots of promotional content here. ", 40))
	assert.NotContains(t, res.Patterns, PatternHiddenUnsubscribe)
}

func TestSeverityScalesWithDistinctPatterns(t *testing.T) {
	// urgency + prize = medium
	res := Detect("Act now", "You are a winner, act now to claim.")
	assert.Equal(t, SeverityMedium, res.Severity)

	// urgency + caps + exclamation + shortener = high
	res = Detect("URGENT!!! act now", "Click https://bit.ly/x before it expires!")
	assert.Equal(t, SeverityHigh, res.Severity)
	assert.GreaterOrEqual(t, len(res.Patterns), 3)
}

func TestPatternsCountedOnce(t *testing.T) {
	res := Detect("urgent urgent urgent", "hurry hurry, act now, last chance")
	count := 0
	for _, p := range res.Patterns {
		if p == PatternFakeUrgency {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
