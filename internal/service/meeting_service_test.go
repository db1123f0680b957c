package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailmind/internal/model"
)

func meetingEmail(id, subject, body string, received time.Time) model.Email {
	return model.Email{
		ID: id, Sender: "alice@acme.com", Subject: subject, Body: body,
		ReceivedAt: received,
	}
}

func TestUpcomingMeetingsKeywordScan(t *testing.T) {
	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	emails := []model.Email{
		meetingEmail("e-1", "Project sync next week", "agenda attached", base),
		meetingEmail("e-2", "Your receipt", "thanks for your purchase", base),
		meetingEmail("e-3", "Hello", "can we schedule a call?", base.Add(time.Hour)),
	}

	meetings := upcomingMeetings(emails)
	require.Len(t, meetings, 2)

	assert.Equal(t, "mtg_e-1", meetings[0].ID)
	assert.Equal(t, "Discuss: Project sync next week", meetings[0].Title)
	assert.Equal(t, base.Add(48*time.Hour), meetings[0].Datetime)
	assert.Equal(t, []string{"alice@acme.com", "me"}, meetings[0].Participants)
	assert.Equal(t, "e-1", meetings[0].SourceEmailID)
	assert.Equal(t, "upcoming", meetings[0].Status)
}

func TestUpcomingMeetingsSortedBySlot(t *testing.T) {
	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	emails := []model.Email{
		meetingEmail("e-late", "meeting", "", base.Add(2*time.Hour)),
		meetingEmail("e-early", "meeting", "", base),
	}

	meetings := upcomingMeetings(emails)
	require.Len(t, meetings, 2)
	assert.Equal(t, "mtg_e-early", meetings[0].ID)
	assert.Equal(t, "mtg_e-late", meetings[1].ID)
}

func TestUpcomingMeetingsEmptyInbox(t *testing.T) {
	meetings := upcomingMeetings(nil)
	assert.NotNil(t, meetings)
	assert.Empty(t, meetings)
}

func TestIsMeetingEmailChecksSubjectAndBody(t *testing.T) {
	base := time.Now()
	yes := meetingEmail("e-1", "FYI", "zoom invite for tomorrow", base)
	no := meetingEmail("e-2", "FYI", "just a status update", base)
	assert.True(t, isMeetingEmail(&yes))
	assert.False(t, isMeetingEmail(&no))
}

func TestParseBriefStripsCodeFences(t *testing.T) {
	raw := "```json\n{\"summary\": \"s\", \"key_points\": [\"a\"], \"suggested_talking_points\": [], \"sentiment\": \"tense\"}\n```"
	brief, err := parseBrief(raw)
	require.NoError(t, err)
	assert.Equal(t, "s", brief.Summary)
	assert.Equal(t, []string{"a"}, brief.KeyPoints)
	assert.Equal(t, "tense", brief.Sentiment)
}

func TestParseBriefRejectsProse(t *testing.T) {
	_, err := parseBrief("I could not produce a brief for this meeting.")
	assert.Error(t, err)
}

func TestBriefPromptCarriesEmailContent(t *testing.T) {
	e := meetingEmail("e-1", "Q3 planning", "let's align on targets", time.Now())
	p := buildBriefPrompt(&e)
	assert.Contains(t, p, "preparing a meeting brief")
	assert.Contains(t, p, "Q3 planning")
	assert.Contains(t, p, "let's align on targets")
}
