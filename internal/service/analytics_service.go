package service

import (
	"context"
	"math"

	"mailmind/internal/model"
	"mailmind/internal/repository"
)

// ROI assumptions baked into the dashboard: each analyzed email saves five
// minutes at a $50 hourly rate.
const (
	minutesSavedPerEmail = 5
	hourlyRateUSD        = 50
)

// DashboardStats is the aggregate view served to the dashboard.
type DashboardStats struct {
	TotalEmails    int                `json:"total_emails"`
	AnalyzedEmails int                `json:"analyzed_emails"`
	ROI            ROIStats           `json:"roi"`
	Trust          TrustStats         `json:"trust"`
	Categories     map[string]int     `json:"categories"`
	DarkPatterns   DarkPatternSummary `json:"dark_patterns"`
}

type ROIStats struct {
	HoursSaved float64 `json:"hours_saved"`
	MoneySaved float64 `json:"money_saved"`
	HourlyRate int     `json:"hourly_rate"`
}

type TrustStats struct {
	AverageConfidence float64 `json:"average_confidence"` // percent
	DraftsSent        int     `json:"drafts_sent"`
}

type DarkPatternSummary struct {
	FlaggedEmails int `json:"flagged_emails"`
}

// AnalyticsService aggregates dashboard statistics with full-table scans.
// Acceptable under the single-writer, low-volume assumption of this system.
type AnalyticsService struct {
	emails *repository.EmailRepository
	drafts *repository.DraftRepository
}

func NewAnalyticsService(emails *repository.EmailRepository, drafts *repository.DraftRepository) *AnalyticsService {
	return &AnalyticsService{emails: emails, drafts: drafts}
}

// DashboardStats computes the live aggregate view.
func (s *AnalyticsService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	total, err := s.emails.Count(ctx)
	if err != nil {
		return nil, err
	}
	analyzed, err := s.emails.CountAnalyzed(ctx)
	if err != nil {
		return nil, err
	}
	avgConfidence, err := s.emails.AvgConfidence(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.emails.CategoryCounts(ctx)
	if err != nil {
		return nil, err
	}
	draftsSent, err := s.drafts.CountByStatus(ctx, model.DraftStatusSent)
	if err != nil {
		return nil, err
	}

	flagged := 0
	all, err := s.emails.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].HasDarkPatterns {
			flagged++
		}
	}

	minutesSaved := float64(analyzed * minutesSavedPerEmail)
	return &DashboardStats{
		TotalEmails:    total,
		AnalyzedEmails: analyzed,
		ROI: ROIStats{
			HoursSaved: round1(minutesSaved / 60),
			MoneySaved: round2(minutesSaved / 60 * hourlyRateUSD),
			HourlyRate: hourlyRateUSD,
		},
		Trust: TrustStats{
			AverageConfidence: round1(avgConfidence * 100),
			DraftsSent:        draftsSent,
		},
		Categories:   categories,
		DarkPatterns: DarkPatternSummary{FlaggedEmails: flagged},
	}, nil
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
