package repositories

import (
	"context"
	"time"

	"lawdesk-erp/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// attendanceRequestRepository implements AttendanceRequestRepository interface
type attendanceRequestRepository struct {
	db *gorm.DB
}

// NewAttendanceRequestRepository creates a new attendance request repository
func NewAttendanceRequestRepository(db *gorm.DB) AttendanceRequestRepository {
	return &attendanceRequestRepository{db: db}
}

// Create inserts a new correction request
func (r *attendanceRequestRepository) Create(ctx context.Context, request *models.AttendanceRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

// GetByID gets a request by ID with relations preloaded
func (r *attendanceRequestRepository) GetByID(ctx context.Context, id uint) (*models.AttendanceRequest, error) {
	var request models.AttendanceRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Resolver").
		First(&request, id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Accept flips the request to ACCEPTED and upserts the attendance record
// for (employee, target date) with the proposed times, all in one database
// transaction. The status flip is conditional on status=PENDING, so a
// duplicate approval matches zero rows and nothing is double-applied; an
// upsert failure rolls the flip back and the request stays PENDING.
func (r *attendanceRequestRepository) Accept(ctx context.Context, request *models.AttendanceRequest, approverID uint, now time.Time) (bool, error) {
	accepted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.AttendanceRequest{}).
			Where("id = ? AND status = ?", request.ID, models.RequestPending).
			Updates(map[string]interface{}{
				"status":      models.RequestAccepted,
				"resolved_by": approverID,
				"resolved_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		assignments := map[string]interface{}{}
		if request.ProposedCheckIn != nil {
			assignments["check_in_time"] = *request.ProposedCheckIn
		}
		if request.ProposedCheckOut != nil {
			assignments["check_out_time"] = *request.ProposedCheckOut
		}

		record := models.AttendanceRecord{
			EmployeeID:   request.EmployeeID,
			WorkDate:     request.TargetDate,
			CheckInTime:  request.ProposedCheckIn,
			CheckOutTime: request.ProposedCheckOut,
			IPAddress:    request.IPAddress,
			Fingerprint:  request.Fingerprint,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "work_date"}},
			DoUpdates: clause.Assignments(assignments),
		}).Create(&record).Error; err != nil {
			return err
		}

		accepted = true
		return nil
	})
	return accepted, err
}

// Reject flips the request to REJECTED; no record mutation
func (r *attendanceRequestRepository) Reject(ctx context.Context, requestID uint, approverID uint, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.AttendanceRequest{}).
		Where("id = ? AND status = ?", requestID, models.RequestPending).
		Updates(map[string]interface{}{
			"status":      models.RequestRejected,
			"resolved_by": approverID,
			"resolved_at": now,
		})
	return result.RowsAffected > 0, result.Error
}

// ListByEmployee returns an employee's own requests, most recent first.
// The secondary id sort keeps the ordering stable under concurrent inserts.
func (r *attendanceRequestRepository) ListByEmployee(ctx context.Context, employeeID uint, offset, limit int) ([]models.AttendanceRequest, int64, error) {
	var requests []models.AttendanceRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&models.AttendanceRequest{}).Where("employee_id = ?", employeeID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&requests).Error
	return requests, total, err
}

// List returns requests globally, optionally filtered by status
func (r *attendanceRequestRepository) List(ctx context.Context, status string, offset, limit int) ([]models.AttendanceRequest, int64, error) {
	var requests []models.AttendanceRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&models.AttendanceRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Employee").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&requests).Error
	return requests, total, err
}

// CountPending returns the number of pending requests (dashboard)
func (r *attendanceRequestRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AttendanceRequest{}).
		Where("status = ?", models.RequestPending).
		Count(&count).Error
	return count, err
}
