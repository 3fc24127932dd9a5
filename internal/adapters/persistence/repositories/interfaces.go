package repositories

import (
	"context"
	"time"

	"lawdesk-erp/internal/adapters/persistence/models"
)

// UserRepository defines employee directory repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmpNo(ctx context.Context, empNo string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByEmpNo(ctx context.Context, empNo string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// OfficeNetworkRepository defines the allow-list repository interface
type OfficeNetworkRepository interface {
	Create(ctx context.Context, network *models.OfficeNetwork) error
	GetByID(ctx context.Context, id uint) (*models.OfficeNetwork, error)
	Update(ctx context.Context, network *models.OfficeNetwork) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]models.OfficeNetwork, error)
	ListEnabled(ctx context.Context) ([]models.OfficeNetwork, error)
}

// OfficeSettingRepository defines the QR access token repository interface
type OfficeSettingRepository interface {
	Get(ctx context.Context) (*models.OfficeSetting, error)
	Create(ctx context.Context, setting *models.OfficeSetting) error
	UpdateToken(ctx context.Context, id uint, token string, rotatedAt time.Time) error
}

// AttendanceRepository defines attendance record repository interface
type AttendanceRepository interface {
	Create(ctx context.Context, record *models.AttendanceRecord) error
	GetByEmployeeAndDate(ctx context.Context, employeeID uint, workDate time.Time) (*models.AttendanceRecord, error)
	// SetCheckOut sets check_out_time only if it is still unset; returns
	// the number of rows updated so callers can detect the lost race.
	SetCheckOut(ctx context.Context, recordID uint, t time.Time) (int64, error)
	ListByEmployee(ctx context.Context, employeeID uint, offset, limit int) ([]models.AttendanceRecord, int64, error)
	ListByDate(ctx context.Context, workDate time.Time) ([]models.AttendanceRecord, error)
	ListMissingCheckOut(ctx context.Context, workDate time.Time) ([]models.AttendanceRecord, error)
	DeleteRange(ctx context.Context, from, to time.Time) (int64, error)
	CountByDate(ctx context.Context, workDate time.Time) (checkedIn int64, checkedOut int64, err error)
}

// AttendanceRequestRepository defines correction request repository interface
type AttendanceRequestRepository interface {
	Create(ctx context.Context, request *models.AttendanceRequest) error
	GetByID(ctx context.Context, id uint) (*models.AttendanceRequest, error)
	// Accept flips PENDING→ACCEPTED and upserts the matching attendance
	// record in one database transaction. Returns false when the request
	// was no longer pending; in that case nothing is written.
	Accept(ctx context.Context, request *models.AttendanceRequest, approverID uint, now time.Time) (bool, error)
	// Reject flips PENDING→REJECTED. Returns false when the request was
	// no longer pending.
	Reject(ctx context.Context, requestID uint, approverID uint, now time.Time) (bool, error)
	ListByEmployee(ctx context.Context, employeeID uint, offset, limit int) ([]models.AttendanceRequest, int64, error)
	List(ctx context.Context, status string, offset, limit int) ([]models.AttendanceRequest, int64, error)
	CountPending(ctx context.Context) (int64, error)
}

// RewardRepository defines reward fund repository interface
type RewardRepository interface {
	// Create inserts the fund and its opening deposit row in one
	// database transaction.
	Create(ctx context.Context, reward *models.Reward, performedBy uint) error
	GetByID(ctx context.Context, id uint) (*models.Reward, error)
	List(ctx context.Context, offset, limit int) ([]models.Reward, int64, error)
	// Deduct applies an atomic compare-and-decrement and appends the
	// ledger row in the same transaction. Returns false when the guarded
	// update matched no row (fund missing, not active, or balance short).
	Deduct(ctx context.Context, rewardID uint, amount float64, description string, performedBy uint) (bool, error)
	// CloseOut flips ACTIVE→CLOSED. Returns false when the fund was not
	// active.
	CloseOut(ctx context.Context, rewardID uint, now time.Time) (bool, error)
	// UpdateActive rewrites fund fields only while the fund is ACTIVE.
	UpdateActive(ctx context.Context, rewardID uint, updates map[string]interface{}) (bool, error)
	Delete(ctx context.Context, rewardID uint) error
	ListTransactions(ctx context.Context, rewardID uint) ([]models.RewardTransaction, error)
	ActiveStats(ctx context.Context) (count int64, totalAvailable float64, err error)
}

// EmployeeTaskCounts is a per-employee aggregate over the reporting window
type EmployeeTaskCounts struct {
	EmployeeID uint   `json:"employee_id"`
	FullName   string `json:"full_name"`
	TaskCounts
}

// TaskCounts holds the raw inputs of the performance score
type TaskCounts struct {
	Total     int64 `json:"total_tasks"`
	Completed int64 `json:"completed_tasks"`
	Overdue   int64 `json:"overdue_tasks"`
	OnTime    int64 `json:"on_time_tasks"`
}

// TaskRepository defines read-only task aggregation interface
type TaskRepository interface {
	CountsByEmployee(ctx context.Context, employeeID uint, from, to time.Time) (*TaskCounts, error)
	CountsForAll(ctx context.Context, from, to time.Time) ([]EmployeeTaskCounts, error)
}
