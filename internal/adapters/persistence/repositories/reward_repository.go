package repositories

import (
	"context"
	"time"

	"lawdesk-erp/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// rewardRepository implements RewardRepository interface
type rewardRepository struct {
	db *gorm.DB
}

// NewRewardRepository creates a new reward repository
func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &rewardRepository{db: db}
}

// Create inserts the fund and logs the opening deposit in one transaction
func (r *rewardRepository) Create(ctx context.Context, reward *models.Reward, performedBy uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(reward).Error; err != nil {
			return err
		}
		opening := &models.RewardTransaction{
			RewardID:    reward.ID,
			TxType:      models.RewardTxDeposit,
			Amount:      reward.CurrentAmount,
			Description: "Opening deposit",
			PerformedBy: performedBy,
		}
		return tx.Create(opening).Error
	})
}

// GetByID gets a fund by ID
func (r *rewardRepository) GetByID(ctx context.Context, id uint) (*models.Reward, error) {
	var reward models.Reward
	err := r.db.WithContext(ctx).First(&reward, id).Error
	if err != nil {
		return nil, err
	}
	return &reward, nil
}

// List lists funds, newest first
func (r *rewardRepository) List(ctx context.Context, offset, limit int) ([]models.Reward, int64, error) {
	var rewards []models.Reward
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Reward{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&rewards).Error
	return rewards, total, err
}

// Deduct decrements the balance with a guarded single-statement update and
// appends the ledger row in the same transaction. The balance guard in the
// WHERE clause is what prevents two concurrent deductions from overdrawing
// the fund: the storage engine serializes the row update, and the loser
// re-reads a balance that no longer covers its amount.
func (r *rewardRepository) Deduct(ctx context.Context, rewardID uint, amount float64, description string, performedBy uint) (bool, error) {
	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Reward{}).
			Where("id = ? AND status = ? AND current_amount >= ?", rewardID, models.RewardActive, amount).
			Update("current_amount", gorm.Expr("current_amount - ?", amount))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		entry := &models.RewardTransaction{
			RewardID:    rewardID,
			TxType:      models.RewardTxDeduct,
			Amount:      amount,
			Description: description,
			PerformedBy: performedBy,
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		applied = true
		return nil
	})
	return applied, err
}

// CloseOut flips the fund to CLOSED; conditional on ACTIVE so a second
// call matches no row
func (r *rewardRepository) CloseOut(ctx context.Context, rewardID uint, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Reward{}).
		Where("id = ? AND status = ?", rewardID, models.RewardActive).
		Updates(map[string]interface{}{
			"status":        models.RewardClosed,
			"cashed_out_at": now,
		})
	return result.RowsAffected > 0, result.Error
}

// UpdateActive rewrites fund fields only while ACTIVE (administrative
// correction path; bypasses the deduction ledger)
func (r *rewardRepository) UpdateActive(ctx context.Context, rewardID uint, updates map[string]interface{}) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Reward{}).
		Where("id = ? AND status = ?", rewardID, models.RewardActive).
		Updates(updates)
	return result.RowsAffected > 0, result.Error
}

// Delete hard deletes a fund and its ledger
func (r *rewardRepository) Delete(ctx context.Context, rewardID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reward_id = ?", rewardID).Delete(&models.RewardTransaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Reward{}, rewardID).Error
	})
}

// ListTransactions returns the fund ledger, newest first
func (r *rewardRepository) ListTransactions(ctx context.Context, rewardID uint) ([]models.RewardTransaction, error) {
	var entries []models.RewardTransaction
	err := r.db.WithContext(ctx).
		Where("reward_id = ?", rewardID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	return entries, err
}

// ActiveStats returns the active fund count and summed available amount
func (r *rewardRepository) ActiveStats(ctx context.Context) (int64, float64, error) {
	var count int64
	var total float64

	err := r.db.WithContext(ctx).
		Model(&models.Reward{}).
		Where("status = ?", models.RewardActive).
		Count(&count).Error
	if err != nil {
		return 0, 0, err
	}

	err = r.db.WithContext(ctx).
		Model(&models.Reward{}).
		Where("status = ?", models.RewardActive).
		Select("COALESCE(SUM(current_amount), 0)").
		Scan(&total).Error
	return count, total, err
}
