package services

import (
	"context"
	"time"

	"lawdesk-erp/internal/adapters/persistence/repositories"
)

// DashboardOverview is the admin landing page aggregate
type DashboardOverview struct {
	Date            string              `json:"date"`
	CheckedIn       int64               `json:"checked_in"`
	CheckedOut      int64               `json:"checked_out"`
	PendingRequests int64               `json:"pending_requests"`
	ActiveFunds     int64               `json:"active_funds"`
	TotalAvailable  float64             `json:"total_available"`
	TopPerformers   []PerformanceReport `json:"top_performers"`
}

// topPerformerCount limits the leaderboard slice on the dashboard
const topPerformerCount = 5

// DashboardService aggregates the admin overview from the other services
type DashboardService struct {
	attendanceRepo repositories.AttendanceRepository
	requestRepo    repositories.AttendanceRequestRepository
	rewardRepo     repositories.RewardRepository
	performance    *PerformanceService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	attendanceRepo repositories.AttendanceRepository,
	requestRepo repositories.AttendanceRequestRepository,
	rewardRepo repositories.RewardRepository,
	performance *PerformanceService,
) *DashboardService {
	return &DashboardService{
		attendanceRepo: attendanceRepo,
		requestRepo:    requestRepo,
		rewardRepo:     rewardRepo,
		performance:    performance,
	}
}

// Overview builds today's snapshot. Top performers cover the current
// calendar month.
func (s *DashboardService) Overview(ctx context.Context) (*DashboardOverview, error) {
	now := time.Now()
	today := workDateOf(now)

	checkedIn, checkedOut, err := s.attendanceRepo.CountByDate(ctx, today)
	if err != nil {
		return nil, err
	}

	pending, err := s.requestRepo.CountPending(ctx)
	if err != nil {
		return nil, err
	}

	activeFunds, totalAvailable, err := s.rewardRepo.ActiveStats(ctx)
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)
	performers, err := s.performance.Leaderboard(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	if len(performers) > topPerformerCount {
		performers = performers[:topPerformerCount]
	}

	return &DashboardOverview{
		Date:            today.Format("2006-01-02"),
		CheckedIn:       checkedIn,
		CheckedOut:      checkedOut,
		PendingRequests: pending,
		ActiveFunds:     activeFunds,
		TotalAvailable:  totalAvailable,
		TopPerformers:   performers,
	}, nil
}
