// Package agentic suggests and executes follow-on actions derived from a
// completed analysis pass.
package agentic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"mailmind/internal/model"
	"mailmind/internal/repository"
	"mailmind/pkg/metrics"
)

// Action types.
const (
	ActionAutoReply       = "auto_reply"
	ActionScheduleMeeting = "schedule_meeting"
	ActionCreateTask      = "create_task"
	ActionFlagUrgent      = "flag_urgent"
	ActionReminder        = "reminder"
)

// Risk levels. Low risk actions may auto-execute; high risk ones need
// explicit confirmation.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

const acknowledgmentTemplate = "Thank you for your email. I've received your message and will review it shortly."

// SuggestedAction is one recommendation surfaced to the client.
type SuggestedAction struct {
	Type           string         `json:"type"`
	Description    string         `json:"description"`
	Risk           string         `json:"risk"`
	Confidence     float64        `json:"confidence"`
	AutoExecutable bool           `json:"auto_executable"`
	Params         map[string]any `json:"params"`
}

// ExecutionResult is the outcome of executing one action.
type ExecutionResult struct {
	Success bool           `json:"success"`
	Action  string         `json:"action"`
	Message string         `json:"message"`
	Error   string         `json:"error,omitempty"`
	Extra   map[string]any `json:"extra,omitempty"`
}

var meetingKeywords = []string{
	"meeting", "call", "sync", "schedule", "calendar",
	"availability", "free time", "slot", "invite",
}

var simplePatterns = []string{
	"fyi", "for your information", "attached", "see attached",
	"sharing this", "thought you'd like", "newsletter",
}

// Executor evaluates emails for actionable follow-ons and executes them.
type Executor struct {
	emails  *repository.EmailRepository
	actions *repository.ActionItemRepository
	drafts  *repository.DraftRepository
	logger  *zap.Logger
	now     func() time.Time
}

func NewExecutor(
	emails *repository.EmailRepository,
	actions *repository.ActionItemRepository,
	drafts *repository.DraftRepository,
	logger *zap.Logger,
) *Executor {
	return &Executor{
		emails:  emails,
		actions: actions,
		drafts:  drafts,
		logger:  logger,
		now:     time.Now,
	}
}

// Suggest evaluates the email's analyzed state and returns zero or more
// recommended actions. Not-found errors pass through from the repository.
func (x *Executor) Suggest(ctx context.Context, emailID string) ([]SuggestedAction, error) {
	e, err := x.emails.GetByID(ctx, emailID)
	if err != nil {
		return nil, err
	}
	items, err := x.actions.ListByEmail(ctx, emailID)
	if err != nil {
		return nil, err
	}

	var out []SuggestedAction

	if isMeetingRequest(e) {
		out = append(out, SuggestedAction{
			Type:        ActionScheduleMeeting,
			Description: "Schedule meeting from this email",
			Risk:        RiskMedium,
			Confidence:  0.85,
			Params:      map[string]any{"email_id": e.ID, "subject": e.Subject},
		})
	}

	if isSimpleAcknowledgment(e) {
		out = append(out, SuggestedAction{
			Type:           ActionAutoReply,
			Description:    "Send acknowledgment reply",
			Risk:           RiskLow,
			Confidence:     0.9,
			AutoExecutable: true,
			Params: map[string]any{
				"email_id":   e.ID,
				"reply_type": "acknowledgment",
				"template":   acknowledgmentTemplate,
			},
		})
	}

	for _, item := range items {
		if item.Status != model.ActionItemPending {
			continue
		}
		out = append(out, SuggestedAction{
			Type:           ActionCreateTask,
			Description:    "Create task: " + truncate(item.Description, 50),
			Risk:           RiskLow,
			Confidence:     0.95,
			AutoExecutable: true,
			Params: map[string]any{
				"task":         item.Description,
				"deadline":     item.Deadline,
				"source_email": e.ID,
			},
		})
	}

	if e.UrgencyScore >= 8 {
		out = append(out, SuggestedAction{
			Type:           ActionFlagUrgent,
			Description:    "Mark as urgent priority",
			Risk:           RiskLow,
			Confidence:     0.95,
			AutoExecutable: true,
			Params:         map[string]any{"email_id": e.ID, "urgency": e.UrgencyScore},
		})
	}

	if e.DeadlineAt != nil {
		until := e.DeadlineAt.Sub(x.now())
		if until > 0 && until < 48*time.Hour {
			var text string
			if e.DeadlineText != nil {
				text = *e.DeadlineText
			}
			out = append(out, SuggestedAction{
				Type:           ActionReminder,
				Description:    "Set reminder for deadline: " + text,
				Risk:           RiskLow,
				Confidence:     0.9,
				AutoExecutable: true,
				Params: map[string]any{
					"email_id": e.ID,
					"deadline": e.DeadlineAt.Format(time.RFC3339),
					"text":     text,
				},
			})
		}
	}

	return out, nil
}

// Execute runs one action by type. Unknown types produce a failed result,
// not an error: the caller surfaces the result body either way.
func (x *Executor) Execute(ctx context.Context, actionType string, params map[string]any) (ExecutionResult, error) {
	switch actionType {
	case ActionAutoReply:
		return x.executeAutoReply(ctx, params)
	case ActionFlagUrgent:
		return x.executeFlagUrgent(ctx, params)
	case ActionScheduleMeeting:
		return x.executeScheduleMeeting(), nil
	case ActionCreateTask:
		return executeCreateTask(params), nil
	case ActionReminder:
		return executeReminder(params), nil
	default:
		return ExecutionResult{
			Success: false,
			Error:   fmt.Sprintf("unknown action type: %s", actionType),
		}, nil
	}
}

func (x *Executor) executeAutoReply(ctx context.Context, params map[string]any) (ExecutionResult, error) {
	emailID, _ := params["email_id"].(string)
	template, _ := params["template"].(string)
	if template == "" {
		template = acknowledgmentTemplate
	}

	e, err := x.emails.GetByID(ctx, emailID)
	if err != nil {
		return ExecutionResult{}, err
	}

	draft := &model.Draft{
		EmailID: e.ID,
		Subject: "Re: " + e.Subject,
		Body:    template,
		Status:  model.DraftStatusSuggested,
	}
	if err := x.drafts.Insert(ctx, draft); err != nil {
		return ExecutionResult{}, err
	}
	metrics.IncrementDraftGenerated("auto_reply")

	return ExecutionResult{
		Success: true,
		Action:  ActionAutoReply,
		Message: "Draft reply created",
		Extra:   map[string]any{"draft_id": draft.ID},
	}, nil
}

func (x *Executor) executeFlagUrgent(ctx context.Context, params map[string]any) (ExecutionResult, error) {
	emailID, _ := params["email_id"].(string)
	if err := x.emails.SetUrgency(ctx, emailID, 10); err != nil {
		return ExecutionResult{}, err
	}
	return ExecutionResult{
		Success: true,
		Action:  ActionFlagUrgent,
		Message: "Email flagged as urgent",
		Extra:   map[string]any{"email_id": emailID},
	}, nil
}

// executeScheduleMeeting proposes slots without a calendar integration:
// next-day morning and afternoon plus a day-after late morning.
func (x *Executor) executeScheduleMeeting() ExecutionResult {
	now := x.now()
	slots := []string{
		now.Add(24*time.Hour + 10*time.Hour).Format("Monday, January 2 at 3:04 PM"),
		now.Add(24*time.Hour + 14*time.Hour).Format("Monday, January 2 at 3:04 PM"),
		now.Add(48*time.Hour + 11*time.Hour).Format("Monday, January 2 at 3:04 PM"),
	}
	return ExecutionResult{
		Success: true,
		Action:  ActionScheduleMeeting,
		Message: "Here are some available time slots",
		Extra:   map[string]any{"suggested_times": slots},
	}
}

func executeCreateTask(params map[string]any) ExecutionResult {
	task, _ := params["task"].(string)
	return ExecutionResult{
		Success: true,
		Action:  ActionCreateTask,
		Message: "Task created: " + truncate(task, 50),
		Extra: map[string]any{
			"description": task,
			"deadline":    params["deadline"],
			"source":      params["source_email"],
		},
	}
}

func executeReminder(params map[string]any) ExecutionResult {
	text, _ := params["text"].(string)
	return ExecutionResult{
		Success: true,
		Action:  ActionReminder,
		Message: "Reminder set for: " + text,
		Extra: map[string]any{
			"deadline": params["deadline"],
			"text":     text,
		},
	}
}

func isMeetingRequest(e *model.Email) bool {
	text := strings.ToLower(e.Subject + " " + e.Body)
	for _, kw := range meetingKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func isSimpleAcknowledgment(e *model.Email) bool {
	text := strings.ToLower(e.Subject + " " + e.Body)
	for _, p := range simplePatterns {
		if strings.Contains(text, p) {
			return true
		}
	}
	// 新闻简报不自动回复
	if strings.Contains(strings.ToLower(e.Category), "newsletter") {
		return false
	}
	return e.UrgencyScore > 0 && e.UrgencyScore <= 3
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
