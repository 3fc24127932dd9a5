package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & Employee Directory Tables
// ============================================================

// User represents users table (the employee directory)
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	EmpNo      string         `gorm:"uniqueIndex;size:20;not null" json:"emp_no"`
	Username   string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email      string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password   string         `gorm:"size:255;not null" json:"-"`
	FullName   string         `gorm:"size:100;not null" json:"full_name"`
	Department string         `gorm:"size:100" json:"department"`
	Role       string         `gorm:"size:20;default:'EMPLOYEE'" json:"role"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// Roles
const (
	RoleEmployee = "EMPLOYEE"
	RoleAdmin    = "ADMIN"
)

// UserResponse DTO
type UserResponse struct {
	ID         uint      `json:"id"`
	EmpNo      string    `json:"emp_no"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Department string    `json:"department"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		EmpNo:      u.EmpNo,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Department: u.Department,
		Role:       u.Role,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Auth & directory
		&User{},
		&RefreshToken{},
		// Attendance
		&OfficeNetwork{},
		&OfficeSetting{},
		&AttendanceRecord{},
		&AttendanceRequest{},
		// Reward fund
		&Reward{},
		&RewardTransaction{},
		// Tasks (consumed by performance scoring)
		&Task{},
	)
}
