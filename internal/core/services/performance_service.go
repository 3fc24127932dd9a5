package services

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"lawdesk-erp/internal/adapters/persistence/repositories"
	"lawdesk-erp/internal/config"

	"gorm.io/gorm"
)

// ErrEmployeeNotFound is returned when scoring an unknown employee
var ErrEmployeeNotFound = errors.New("employee not found")

// PerformanceReport is one employee's score over a reporting window
type PerformanceReport struct {
	EmployeeID     uint    `json:"employee_id"`
	FullName       string  `json:"full_name,omitempty"`
	From           string  `json:"from"`
	To             string  `json:"to"`
	TotalTasks     int64   `json:"total_tasks"`
	CompletedTasks int64   `json:"completed_tasks"`
	OverdueTasks   int64   `json:"overdue_tasks"`
	OnTimeTasks    int64   `json:"on_time_tasks"`
	CompletionRate float64 `json:"completion_rate"`
	OnTimeRate     float64 `json:"on_time_rate"`
	Score          float64 `json:"score"`
}

// PerformanceService derives scores from task aggregates. The derivation is
// pure: the same counts always produce the same score, nothing is stored.
type PerformanceService struct {
	taskRepo repositories.TaskRepository
	userRepo repositories.UserRepository
	weights  config.PerformanceConfig
}

// NewPerformanceService creates a new performance service
func NewPerformanceService(
	taskRepo repositories.TaskRepository,
	userRepo repositories.UserRepository,
	weights config.PerformanceConfig,
) *PerformanceService {
	return &PerformanceService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		weights:  weights,
	}
}

// ComputeScore turns raw task counts into rates and a score.
//
//	completionRate = completed / total * 100        (0 when total is 0)
//	onTimeRate     = onTime / completed * 100       (0 when completed is 0)
//	score          = completionWeight*completionRate
//	               + onTimeWeight*onTimeRate
//	               - overduePenalty*overdueTasks
//
// clamped to [0, 100] and rounded to two decimals for display.
func (s *PerformanceService) ComputeScore(counts repositories.TaskCounts) (completionRate, onTimeRate, score float64) {
	if counts.Total > 0 {
		completionRate = float64(counts.Completed) / float64(counts.Total) * 100
	}
	if counts.Completed > 0 {
		onTimeRate = float64(counts.OnTime) / float64(counts.Completed) * 100
	}

	score = s.weights.CompletionWeight*completionRate +
		s.weights.OnTimeWeight*onTimeRate -
		s.weights.OverduePenalty*float64(counts.Overdue)

	score = math.Max(0, math.Min(100, score))

	return round2(completionRate), round2(onTimeRate), round2(score)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Score computes one employee's report over [from, to]
func (s *PerformanceService) Score(ctx context.Context, employeeID uint, from, to time.Time) (*PerformanceReport, error) {
	user, err := s.userRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	counts, err := s.taskRepo.CountsByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}

	completionRate, onTimeRate, score := s.ComputeScore(*counts)
	return &PerformanceReport{
		EmployeeID:     employeeID,
		FullName:       user.FullName,
		From:           from.Format("2006-01-02"),
		To:             to.Format("2006-01-02"),
		TotalTasks:     counts.Total,
		CompletedTasks: counts.Completed,
		OverdueTasks:   counts.Overdue,
		OnTimeTasks:    counts.OnTime,
		CompletionRate: completionRate,
		OnTimeRate:     onTimeRate,
		Score:          score,
	}, nil
}

// Leaderboard scores every employee with tasks in the window and ranks
// them: score desc, then completion rate desc, then employee id asc. The
// id tie-break keeps the ordering deterministic.
func (s *PerformanceService) Leaderboard(ctx context.Context, from, to time.Time) ([]PerformanceReport, error) {
	allCounts, err := s.taskRepo.CountsForAll(ctx, from, to)
	if err != nil {
		return nil, err
	}

	reports := make([]PerformanceReport, 0, len(allCounts))
	for _, ec := range allCounts {
		completionRate, onTimeRate, score := s.ComputeScore(ec.TaskCounts)
		reports = append(reports, PerformanceReport{
			EmployeeID:     ec.EmployeeID,
			FullName:       ec.FullName,
			From:           from.Format("2006-01-02"),
			To:             to.Format("2006-01-02"),
			TotalTasks:     ec.Total,
			CompletedTasks: ec.Completed,
			OverdueTasks:   ec.Overdue,
			OnTimeTasks:    ec.OnTime,
			CompletionRate: completionRate,
			OnTimeRate:     onTimeRate,
			Score:          score,
		})
	}

	sort.Slice(reports, func(i, j int) bool {
		if reports[i].Score != reports[j].Score {
			return reports[i].Score > reports[j].Score
		}
		if reports[i].CompletionRate != reports[j].CompletionRate {
			return reports[i].CompletionRate > reports[j].CompletionRate
		}
		return reports[i].EmployeeID < reports[j].EmployeeID
	})

	return reports, nil
}
