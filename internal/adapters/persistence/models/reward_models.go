package models

import (
	"time"
)

// ============================================================
// Reward Fund Tables
// ============================================================

// Reward is a named pool of money with a running balance. The balance only
// moves down through deductions; the opening amount is the opening deposit.
type Reward struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"size:100;not null" json:"name"`
	CurrentAmount float64    `gorm:"type:decimal(15,2);not null" json:"current_amount"`
	Status        string     `gorm:"size:10;default:'ACTIVE';index" json:"status"`
	StartDate     time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate       *time.Time `gorm:"type:date" json:"end_date"`
	CashedOutAt   *time.Time `json:"cashed_out_at"`
	Description   string     `gorm:"type:text" json:"description"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Transactions []RewardTransaction `gorm:"foreignKey:RewardID" json:"transactions,omitempty"`
}

func (Reward) TableName() string {
	return "rewards"
}

// Reward fund statuses
const (
	RewardActive = "ACTIVE"
	RewardClosed = "CLOSED"
)

// RewardTransaction is the append-only fund ledger. Each DEDUCT row
// strictly decreases the parent fund's balance by Amount.
type RewardTransaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RewardID    uint      `gorm:"not null;index" json:"reward_id"`
	TxType      string    `gorm:"size:10;not null" json:"tx_type"`
	Amount      float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description string    `gorm:"type:text" json:"description"`
	PerformedBy uint      `gorm:"not null" json:"performed_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Reward    *Reward `gorm:"foreignKey:RewardID" json:"reward,omitempty"`
	Performer *User   `gorm:"foreignKey:PerformedBy" json:"performer,omitempty"`
}

func (RewardTransaction) TableName() string {
	return "reward_transactions"
}

// Reward transaction types
const (
	RewardTxDeposit = "DEPOSIT"
	RewardTxDeduct  = "DEDUCT"
)
