package repositories

import (
	"context"
	"time"

	"lawdesk-erp/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// attendanceRepository implements AttendanceRepository interface
type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create inserts a new attendance record. The (employee_id, work_date)
// unique index makes the second concurrent insert fail with
// gorm.ErrDuplicatedKey; callers treat that as "already checked in".
func (r *attendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// GetByEmployeeAndDate returns the record for (employee, date), or
// (nil, nil) when none exists
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID uint, workDate time.Time) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND work_date = ?", employeeID, workDate).
		First(&record).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// SetCheckOut sets check_out_time only where it is still NULL
func (r *attendanceRepository) SetCheckOut(ctx context.Context, recordID uint, t time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.AttendanceRecord{}).
		Where("id = ? AND check_in_time IS NOT NULL AND check_out_time IS NULL", recordID).
		Update("check_out_time", t)
	return result.RowsAffected, result.Error
}

// ListByEmployee returns an employee's records, most recent first
func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID uint, offset, limit int) ([]models.AttendanceRecord, int64, error) {
	var records []models.AttendanceRecord
	var total int64

	query := r.db.WithContext(ctx).Model(&models.AttendanceRecord{}).Where("employee_id = ?", employeeID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("work_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	return records, total, err
}

// ListByDate returns all records for one work date with employees preloaded
func (r *attendanceRepository) ListByDate(ctx context.Context, workDate time.Time) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("work_date = ?", workDate).
		Order("check_in_time ASC").
		Find(&records).Error
	return records, err
}

// ListMissingCheckOut returns records checked in but not out for a date
func (r *attendanceRepository) ListMissingCheckOut(ctx context.Context, workDate time.Time) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("work_date = ? AND check_in_time IS NOT NULL AND check_out_time IS NULL", workDate).
		Find(&records).Error
	return records, err
}

// DeleteRange hard deletes records in [from, to] (administrative bulk-delete)
func (r *attendanceRepository) DeleteRange(ctx context.Context, from, to time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("work_date >= ? AND work_date <= ?", from, to).
		Delete(&models.AttendanceRecord{})
	return result.RowsAffected, result.Error
}

// CountByDate returns checked-in and checked-out counts for a date
func (r *attendanceRepository) CountByDate(ctx context.Context, workDate time.Time) (int64, int64, error) {
	var checkedIn, checkedOut int64

	err := r.db.WithContext(ctx).
		Model(&models.AttendanceRecord{}).
		Where("work_date = ? AND check_in_time IS NOT NULL", workDate).
		Count(&checkedIn).Error
	if err != nil {
		return 0, 0, err
	}

	err = r.db.WithContext(ctx).
		Model(&models.AttendanceRecord{}).
		Where("work_date = ? AND check_out_time IS NOT NULL", workDate).
		Count(&checkedOut).Error
	return checkedIn, checkedOut, err
}
