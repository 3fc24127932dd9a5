package services

import (
	"context"
	"errors"
	"log"
	"time"

	"lawdesk-erp/internal/adapters/persistence/models"
	"lawdesk-erp/internal/adapters/persistence/repositories"
	"lawdesk-erp/internal/pkg/pagination"

	"gorm.io/gorm"
)

// Reward fund errors
var (
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrFundNameRequired    = errors.New("fund name is required")
	ErrFundNotFound        = errors.New("reward fund not found")
	ErrFundNotActive       = errors.New("reward fund is not active")
	ErrInsufficientBalance = errors.New("insufficient fund balance")
)

// CreateFundInput is the payload for opening a reward fund
type CreateFundInput struct {
	Name          string
	InitialAmount float64
	StartDate     time.Time
	EndDate       *time.Time
	Description   string
}

// UpdateFundInput carries the administrative fund edits. Nil fields are
// left untouched.
type UpdateFundInput struct {
	Name        *string
	Description *string
	EndDate     *time.Time
	Status      *string
}

// RewardService manages reward funds and their append-only ledger
type RewardService struct {
	rewardRepo repositories.RewardRepository
}

// NewRewardService creates a new reward service
func NewRewardService(rewardRepo repositories.RewardRepository) *RewardService {
	return &RewardService{rewardRepo: rewardRepo}
}

// Create opens a new fund. The opening amount becomes both the starting
// balance and the opening deposit row in the ledger.
func (s *RewardService) Create(ctx context.Context, in CreateFundInput, performedBy uint) (*models.Reward, error) {
	if in.Name == "" {
		return nil, ErrFundNameRequired
	}
	if in.InitialAmount <= 0 {
		return nil, ErrInvalidAmount
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return nil, ErrInvalidDateRange
	}

	reward := &models.Reward{
		Name:          in.Name,
		CurrentAmount: in.InitialAmount,
		Status:        models.RewardActive,
		StartDate:     workDateOf(in.StartDate),
		EndDate:       in.EndDate,
		Description:   in.Description,
	}

	if err := s.rewardRepo.Create(ctx, reward, performedBy); err != nil {
		return nil, err
	}

	log.Printf("✅ Reward fund '%s' opened with %.2f", reward.Name, reward.CurrentAmount)
	return reward, nil
}

// Get returns a single fund
func (s *RewardService) Get(ctx context.Context, fundID uint) (*models.Reward, error) {
	reward, err := s.rewardRepo.GetByID(ctx, fundID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFundNotFound
		}
		return nil, err
	}
	return reward, nil
}

// List returns funds, newest first
func (s *RewardService) List(ctx context.Context, p *pagination.Params) ([]models.Reward, int64, error) {
	return s.rewardRepo.List(ctx, p.Offset, p.Limit)
}

// Deduct spends from a fund. The repository applies a guarded
// compare-and-decrement, so the balance can never go below zero even under
// concurrent deductions; when the guard rejects the update we re-read the
// fund once to report which precondition actually failed.
func (s *RewardService) Deduct(ctx context.Context, fundID uint, amount float64, description string, performedBy uint) (*models.Reward, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	applied, err := s.rewardRepo.Deduct(ctx, fundID, amount, description, performedBy)
	if err != nil {
		return nil, err
	}
	if !applied {
		reward, err := s.Get(ctx, fundID)
		if err != nil {
			return nil, err
		}
		if reward.Status != models.RewardActive {
			return nil, ErrFundNotActive
		}
		return nil, ErrInsufficientBalance
	}

	log.Printf("✅ Deducted %.2f from reward fund %d", amount, fundID)
	return s.Get(ctx, fundID)
}

// CloseOut cashes a fund out. Terminal: a second close reports the fund as
// no longer active.
func (s *RewardService) CloseOut(ctx context.Context, fundID uint) (*models.Reward, error) {
	closed, err := s.rewardRepo.CloseOut(ctx, fundID, time.Now())
	if err != nil {
		return nil, err
	}
	if !closed {
		if _, err := s.Get(ctx, fundID); err != nil {
			return nil, err
		}
		return nil, ErrFundNotActive
	}

	log.Printf("✅ Reward fund %d closed out", fundID)
	return s.Get(ctx, fundID)
}

// Update rewrites fund fields while the fund is still active. Setting
// status to CLOSED routes through CloseOut so CashedOutAt is stamped.
func (s *RewardService) Update(ctx context.Context, fundID uint, in UpdateFundInput) (*models.Reward, error) {
	if in.Status != nil {
		switch *in.Status {
		case models.RewardClosed:
			return s.CloseOut(ctx, fundID)
		case models.RewardActive:
			// staying active is a no-op on status
		default:
			return nil, ErrInvalidStatusFilter
		}
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, ErrFundNameRequired
		}
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.EndDate != nil {
		updates["end_date"] = *in.EndDate
	}

	if len(updates) > 0 {
		updated, err := s.rewardRepo.UpdateActive(ctx, fundID, updates)
		if err != nil {
			return nil, err
		}
		if !updated {
			reward, err := s.Get(ctx, fundID)
			if err != nil {
				return nil, err
			}
			if reward.Status != models.RewardActive {
				return nil, ErrFundNotActive
			}
		}
	}

	return s.Get(ctx, fundID)
}

// Delete hard deletes a fund and its ledger (administrative path)
func (s *RewardService) Delete(ctx context.Context, fundID uint) error {
	if _, err := s.Get(ctx, fundID); err != nil {
		return err
	}
	if err := s.rewardRepo.Delete(ctx, fundID); err != nil {
		return err
	}
	log.Printf("✅ Reward fund %d deleted", fundID)
	return nil
}

// Ledger returns the fund's transaction history, newest first
func (s *RewardService) Ledger(ctx context.Context, fundID uint) ([]models.RewardTransaction, error) {
	if _, err := s.Get(ctx, fundID); err != nil {
		return nil, err
	}
	return s.rewardRepo.ListTransactions(ctx, fundID)
}

// EmployeeStats is the widget payload for the employee dashboard
type EmployeeStats struct {
	ActiveFunds    int64   `json:"active_funds"`
	TotalAvailable float64 `json:"total_available"`
}

// Stats returns the active fund count and total available amount
func (s *RewardService) Stats(ctx context.Context) (*EmployeeStats, error) {
	count, total, err := s.rewardRepo.ActiveStats(ctx)
	if err != nil {
		return nil, err
	}
	return &EmployeeStats{ActiveFunds: count, TotalAvailable: total}, nil
}
