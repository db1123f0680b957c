package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"mailmind/internal/llm"
	"mailmind/internal/model"
	"mailmind/internal/repository"
)

// meetingIDPrefix ties a derived meeting id back to its source email.
const meetingIDPrefix = "mtg_"

// meetingLeadTime places the simulated slot two days after the email
// arrived. There is no calendar integration; meetings are inferred from
// inbox content only.
const meetingLeadTime = 48 * time.Hour

// 会议信号词，主题或正文命中任一即可
var meetingSignals = []string{"meeting", "zoom", "invite", "schedule", "calendar", "sync"}

// Meeting is a meeting inferred from one inbox email.
type Meeting struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Datetime      time.Time `json:"datetime"`
	Participants  []string  `json:"participants"`
	SourceEmailID string    `json:"source_email_id"`
	Status        string    `json:"status"`
}

// MeetingBrief is the generated preparation brief for one meeting.
type MeetingBrief struct {
	Summary                string   `json:"summary"`
	KeyPoints              []string `json:"key_points"`
	SuggestedTalkingPoints []string `json:"suggested_talking_points"`
	Sentiment              string   `json:"sentiment"`
}

// MeetingService infers upcoming meetings from the mailbox and prepares
// briefs for them.
type MeetingService struct {
	emails  *repository.EmailRepository
	gateway *llm.Gateway
	logger  *zap.Logger
}

func NewMeetingService(emails *repository.EmailRepository, gateway *llm.Gateway, logger *zap.Logger) *MeetingService {
	return &MeetingService{emails: emails, gateway: gateway, logger: logger}
}

// Upcoming scans the whole mailbox for meeting-shaped emails and returns
// the derived meetings sorted by slot time.
func (s *MeetingService) Upcoming(ctx context.Context) ([]Meeting, error) {
	emails, err := s.emails.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return upcomingMeetings(emails), nil
}

func upcomingMeetings(emails []model.Email) []Meeting {
	meetings := make([]Meeting, 0)
	for i := range emails {
		e := &emails[i]
		if !isMeetingEmail(e) {
			continue
		}
		meetings = append(meetings, Meeting{
			ID:            meetingIDPrefix + e.ID,
			Title:         "Discuss: " + e.Subject,
			Datetime:      e.ReceivedAt.Add(meetingLeadTime),
			Participants:  []string{e.Sender, "me"},
			SourceEmailID: e.ID,
			Status:        "upcoming",
		})
	}
	sort.Slice(meetings, func(i, j int) bool {
		if !meetings[i].Datetime.Equal(meetings[j].Datetime) {
			return meetings[i].Datetime.Before(meetings[j].Datetime)
		}
		return meetings[i].ID < meetings[j].ID
	})
	return meetings
}

func isMeetingEmail(e *model.Email) bool {
	subject := strings.ToLower(e.Subject)
	body := strings.ToLower(e.Body)
	for _, k := range meetingSignals {
		if strings.Contains(subject, k) || strings.Contains(body, k) {
			return true
		}
	}
	return false
}

// Brief generates a preparation brief for a meeting from its source email.
// repository.ErrEmailNotFound passes through when the meeting id does not
// resolve; an unparseable model response degrades to a placeholder brief
// rather than an error.
func (s *MeetingService) Brief(ctx context.Context, meetingID string) (*MeetingBrief, error) {
	emailID := strings.TrimPrefix(meetingID, meetingIDPrefix)
	e, err := s.emails.GetByID(ctx, emailID)
	if err != nil {
		return nil, err
	}

	resp := s.gateway.Generate(ctx, buildBriefPrompt(e), true)
	brief, err := parseBrief(resp.Text)
	if err != nil {
		s.logger.Warn("meeting brief unparseable, returning placeholder",
			zap.String("email_id", e.ID), zap.Error(err))
		return &MeetingBrief{
			Summary:                "Could not generate brief.",
			KeyPoints:              []string{},
			SuggestedTalkingPoints: []string{},
			Sentiment:              "neutral",
		}, nil
	}
	return brief, nil
}

// parseBrief tolerates markdown code fences around the JSON object.
func parseBrief(text string) (*MeetingBrief, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	var brief MeetingBrief
	if err := json.Unmarshal([]byte(strings.TrimSpace(cleaned)), &brief); err != nil {
		return nil, fmt.Errorf("parse meeting brief: %w", err)
	}
	return &brief, nil
}

func buildBriefPrompt(e *model.Email) string {
	return fmt.Sprintf(`You are an executive assistant preparing a meeting brief.

Based on this email thread, generate a concise meeting preparation brief.

Email Subject: %s
Sender: %s
Body:
%s

Return ONLY a JSON object with this shape:
{
  "summary": "1-2 sentence summary of the context",
  "key_points": ["point 1", "point 2"],
  "suggested_talking_points": ["question 1", "proposal 1"],
  "sentiment": "positive" | "neutral" | "negative" | "tense"
}`, e.Subject, e.Sender, e.Body)
}
