package models

import (
	"time"
)

// ============================================================
// Attendance Tables
// ============================================================

// OfficeNetwork represents an allow-listed office address or range.
// Admin-owned; the attendance gate only reads ENABLED rows.
type OfficeNetwork struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OfficeName string    `gorm:"size:100;not null" json:"office_name"`
	IPAddress  string    `gorm:"size:50;not null" json:"ip_address"`
	Status     string    `gorm:"size:10;default:'ENABLED';index" json:"status"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (OfficeNetwork) TableName() string {
	return "office_networks"
}

// OfficeNetwork statuses
const (
	NetworkEnabled  = "ENABLED"
	NetworkDisabled = "DISABLED"
)

// OfficeSetting holds the stable QR access token employees scan to reach
// the check-in page. Single row, created on seed.
type OfficeSetting struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AccessToken string    `gorm:"size:64;uniqueIndex;not null" json:"access_token"`
	RotatedAt   time.Time `json:"rotated_at"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (OfficeSetting) TableName() string {
	return "office_settings"
}

// AttendanceRecord is one row per (employee, work date). The composite
// unique index is the sole serialization mechanism for concurrent
// check-ins: the second insert fails at the storage layer.
type AttendanceRecord struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	EmployeeID   uint       `gorm:"not null;uniqueIndex:idx_employee_work_date" json:"employee_id"`
	WorkDate     time.Time  `gorm:"type:date;not null;uniqueIndex:idx_employee_work_date" json:"work_date"`
	CheckInTime  *time.Time `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`
	IPAddress    string     `gorm:"size:50" json:"ip_address"`
	Fingerprint  string     `gorm:"size:128" json:"fingerprint"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Employee *User `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// AttendanceRequest is an employee's ask to retroactively set or correct
// a day's check-in/out times. PENDING until an approver resolves it;
// resolution is terminal.
type AttendanceRequest struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	EmployeeID       uint       `gorm:"not null;index" json:"employee_id"`
	TargetDate       time.Time  `gorm:"type:date;not null" json:"target_date"`
	ProposedCheckIn  *time.Time `json:"proposed_check_in"`
	ProposedCheckOut *time.Time `json:"proposed_check_out"`
	Message          string     `gorm:"type:text" json:"message"`
	Status           string     `gorm:"size:10;default:'PENDING';index" json:"status"`
	Fingerprint      string     `gorm:"size:128" json:"fingerprint"`
	IPAddress        string     `gorm:"size:50" json:"ip_address"`
	ResolvedBy       *uint      `json:"resolved_by"`
	ResolvedAt       *time.Time `json:"resolved_at"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Employee *User `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Resolver *User `gorm:"foreignKey:ResolvedBy" json:"resolver,omitempty"`
}

func (AttendanceRequest) TableName() string {
	return "attendance_requests"
}

// AttendanceRequest statuses
const (
	RequestPending  = "PENDING"
	RequestAccepted = "ACCEPTED"
	RequestRejected = "REJECTED"
)
