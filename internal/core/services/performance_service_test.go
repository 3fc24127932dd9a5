package services

import (
	"context"
	"testing"
	"time"

	"lawdesk-erp/internal/adapters/persistence/models"
	"lawdesk-erp/internal/adapters/persistence/repositories"
	"lawdesk-erp/internal/config"
)

func defaultWeights() config.PerformanceConfig {
	return config.PerformanceConfig{
		CompletionWeight: 0.6,
		OnTimeWeight:     0.4,
		OverduePenalty:   5,
	}
}

func newTestPerformanceService(taskRepo *fakeTaskRepo, weights config.PerformanceConfig) *PerformanceService {
	userRepo := newFakeUserRepo(
		&models.User{ID: 1, FullName: "Jane Counsel"},
		&models.User{ID: 2, FullName: "Sam Clerk"},
		&models.User{ID: 3, FullName: "Ada Partner"},
	)
	return NewPerformanceService(taskRepo, userRepo, weights)
}

func TestComputeScore(t *testing.T) {
	tests := []struct {
		name               string
		weights            config.PerformanceConfig
		counts             repositories.TaskCounts
		wantCompletionRate float64
		wantOnTimeRate     float64
		wantScore          float64
	}{
		{
			name:               "typical month",
			weights:            defaultWeights(),
			counts:             repositories.TaskCounts{Total: 10, Completed: 8, Overdue: 1, OnTime: 7},
			wantCompletionRate: 80,
			wantOnTimeRate:     87.5,
			// 0.6*80 + 0.4*87.5 - 5*1
			wantScore: 78,
		},
		{
			name:    "no tasks",
			weights: defaultWeights(),
			counts:  repositories.TaskCounts{},
		},
		{
			name:               "nothing completed",
			weights:            defaultWeights(),
			counts:             repositories.TaskCounts{Total: 4, Completed: 0, Overdue: 2, OnTime: 0},
			wantCompletionRate: 0,
			wantOnTimeRate:     0,
			wantScore:          0,
		},
		{
			name:               "penalty floors at zero",
			weights:            defaultWeights(),
			counts:             repositories.TaskCounts{Total: 10, Completed: 5, Overdue: 20, OnTime: 5},
			wantCompletionRate: 50,
			wantOnTimeRate:     100,
			wantScore:          0,
		},
		{
			name: "heavy weights cap at one hundred",
			weights: config.PerformanceConfig{
				CompletionWeight: 1,
				OnTimeWeight:     1,
				OverduePenalty:   0,
			},
			counts:             repositories.TaskCounts{Total: 10, Completed: 8, Overdue: 0, OnTime: 7},
			wantCompletionRate: 80,
			wantOnTimeRate:     87.5,
			wantScore:          100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestPerformanceService(&fakeTaskRepo{}, tt.weights)

			completionRate, onTimeRate, score := svc.ComputeScore(tt.counts)
			if completionRate != tt.wantCompletionRate {
				t.Errorf("completionRate = %.2f, want %.2f", completionRate, tt.wantCompletionRate)
			}
			if onTimeRate != tt.wantOnTimeRate {
				t.Errorf("onTimeRate = %.2f, want %.2f", onTimeRate, tt.wantOnTimeRate)
			}
			if score != tt.wantScore {
				t.Errorf("score = %.2f, want %.2f", score, tt.wantScore)
			}
		})
	}
}

func TestComputeScoreIsDeterministic(t *testing.T) {
	svc := newTestPerformanceService(&fakeTaskRepo{}, defaultWeights())
	counts := repositories.TaskCounts{Total: 13, Completed: 9, Overdue: 2, OnTime: 6}

	_, _, first := svc.ComputeScore(counts)
	for i := 0; i < 100; i++ {
		if _, _, score := svc.ComputeScore(counts); score != first {
			t.Fatalf("score changed between runs: %.4f vs %.4f", first, score)
		}
	}
}

func TestScoreReportsEmployee(t *testing.T) {
	taskRepo := &fakeTaskRepo{
		byEmployee: map[uint]repositories.TaskCounts{
			1: {Total: 10, Completed: 8, Overdue: 1, OnTime: 7},
		},
	}
	svc := newTestPerformanceService(taskRepo, defaultWeights())

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)

	report, err := svc.Score(context.Background(), 1, from, to)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if report.FullName != "Jane Counsel" {
		t.Errorf("FullName = %q, want Jane Counsel", report.FullName)
	}
	if report.Score != 78 {
		t.Errorf("Score = %.2f, want 78", report.Score)
	}
	if report.From != "2026-08-01" || report.To != "2026-08-31" {
		t.Errorf("period = %s..%s, want 2026-08-01..2026-08-31", report.From, report.To)
	}
}

func TestScoreUnknownEmployee(t *testing.T) {
	svc := newTestPerformanceService(&fakeTaskRepo{}, defaultWeights())

	if _, err := svc.Score(context.Background(), 404, time.Now(), time.Now()); err != ErrEmployeeNotFound {
		t.Fatalf("Score() error = %v, want ErrEmployeeNotFound", err)
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	// Employees 2 and 3 tie on score and completion rate; the lower id
	// must come first.
	taskRepo := &fakeTaskRepo{
		all: []repositories.EmployeeTaskCounts{
			{EmployeeID: 3, FullName: "Ada Partner", TaskCounts: repositories.TaskCounts{Total: 10, Completed: 5, Overdue: 0, OnTime: 5}},
			{EmployeeID: 1, FullName: "Jane Counsel", TaskCounts: repositories.TaskCounts{Total: 10, Completed: 10, Overdue: 0, OnTime: 10}},
			{EmployeeID: 2, FullName: "Sam Clerk", TaskCounts: repositories.TaskCounts{Total: 10, Completed: 5, Overdue: 0, OnTime: 5}},
		},
	}
	svc := newTestPerformanceService(taskRepo, defaultWeights())

	reports, err := svc.Leaderboard(context.Background(), time.Now().AddDate(0, -1, 0), time.Now())
	if err != nil {
		t.Fatalf("Leaderboard() error = %v", err)
	}

	wantOrder := []uint{1, 2, 3}
	if len(reports) != len(wantOrder) {
		t.Fatalf("len(reports) = %d, want %d", len(reports), len(wantOrder))
	}
	for i, want := range wantOrder {
		if reports[i].EmployeeID != want {
			t.Errorf("position %d: employee %d, want %d", i, reports[i].EmployeeID, want)
		}
	}
	if reports[0].Score <= reports[1].Score {
		t.Errorf("leader score %.2f not above runner-up %.2f", reports[0].Score, reports[1].Score)
	}
}
