package agentic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailmind/internal/model"
)

func TestIsMeetingRequest(t *testing.T) {
	assert.True(t, isMeetingRequest(&model.Email{Subject: "Team sync next week", Body: "what's your availability?"}))
	assert.False(t, isMeetingRequest(&model.Email{Subject: "Lunch photos", Body: "see you around"}))
}

func TestIsSimpleAcknowledgment(t *testing.T) {
	assert.True(t, isSimpleAcknowledgment(&model.Email{Subject: "FYI", Body: "sharing this for context"}))
	assert.True(t, isSimpleAcknowledgment(&model.Email{Subject: "hello", Body: "just checking in", UrgencyScore: 2}))
	assert.False(t, isSimpleAcknowledgment(&model.Email{Subject: "hello", Body: "deadline today", UrgencyScore: 9}))

	// analyzed newsletters don't get auto replies through the urgency branch
	assert.False(t, isSimpleAcknowledgment(&model.Email{
		Subject: "weekly digest", Body: "content", Category: "Newsletter", UrgencyScore: 1,
	}))
}

func TestExecuteScheduleMeetingSuggestsThreeSlots(t *testing.T) {
	fixed := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	x := &Executor{now: func() time.Time { return fixed }}

	res := x.executeScheduleMeeting()
	assert.True(t, res.Success)
	slots, ok := res.Extra["suggested_times"].([]string)
	require.True(t, ok)
	assert.Len(t, slots, 3)
}

func TestExecuteCreateTaskTruncatesDescription(t *testing.T) {
	long := ""
	for i := 0; i < 20; i++ {
		long += "abcde"
	}
	res := executeCreateTask(map[string]any{"task": long})
	assert.True(t, res.Success)
	assert.Contains(t, res.Message, "...")
	assert.Less(t, len(res.Message), len("Task created: ")+len(long))
}

func TestExecuteReminder(t *testing.T) {
	res := executeReminder(map[string]any{"text": "by Friday", "deadline": "2026-03-06T17:00:00Z"})
	assert.True(t, res.Success)
	assert.Equal(t, "Reminder set for: by Friday", res.Message)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 50))
	assert.Equal(t, "abc...", truncate("abcdef", 3))
}
