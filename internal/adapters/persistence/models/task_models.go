package models

import (
	"time"
)

// ============================================================
// Task Table (consumed read-only by performance scoring)
// ============================================================

// Task belongs to the case-services side of the system; this service only
// aggregates counts per employee for the performance score and never
// mutates task state.
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Priority    string     `gorm:"size:10;default:'MEDIUM'" json:"priority"`
	Status      string     `gorm:"size:15;default:'PENDING';index" json:"status"`
	EmployeeID  uint       `gorm:"not null;index" json:"employee_id"`
	StartDate   time.Time  `gorm:"type:date;not null" json:"start_date"`
	DueDate     time.Time  `gorm:"type:date;not null" json:"due_date"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Employee *User `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

func (Task) TableName() string {
	return "tasks"
}

// Task statuses
const (
	TaskPending    = "PENDING"
	TaskInProgress = "IN_PROGRESS"
	TaskCompleted  = "COMPLETED"
	TaskOverdue    = "OVERDUE"
)
