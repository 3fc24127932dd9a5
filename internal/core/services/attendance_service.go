package services

import (
	"context"
	"errors"
	"log"
	"time"

	"lawdesk-erp/internal/adapters/persistence/models"
	"lawdesk-erp/internal/adapters/persistence/repositories"
	"lawdesk-erp/internal/pkg/netcheck"
	"lawdesk-erp/internal/pkg/pagination"

	"gorm.io/gorm"
)

// Attendance errors
var (
	ErrOutsideAllowedNetwork = errors.New("request does not originate from an allowed office network")
	ErrAlreadyCheckedIn      = errors.New("already checked in today")
	ErrNotCheckedInYet       = errors.New("not checked in yet today")
	ErrAlreadyCheckedOut     = errors.New("already checked out today")
	ErrInvalidDateRange      = errors.New("invalid date range")
)

// AttendanceService handles check-in/check-out and the office network gate
type AttendanceService struct {
	attendanceRepo repositories.AttendanceRepository
	networkRepo    repositories.OfficeNetworkRepository
	userRepo       repositories.UserRepository
	notifier       *NotificationService
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(
	attendanceRepo repositories.AttendanceRepository,
	networkRepo repositories.OfficeNetworkRepository,
	userRepo repositories.UserRepository,
	notifier *NotificationService,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		networkRepo:    networkRepo,
		userRepo:       userRepo,
		notifier:       notifier,
	}
}

// workDateOf truncates a timestamp to its calendar date
func workDateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// checkNetwork enforces the office allow-list. An empty allow-list denies
// everyone: attendance from nowhere is not attendance from the office.
func (s *AttendanceService) checkNetwork(ctx context.Context, ip string) error {
	networks, err := s.networkRepo.ListEnabled(ctx)
	if err != nil {
		return err
	}

	entries := make([]string, 0, len(networks))
	for _, n := range networks {
		entries = append(entries, n.IPAddress)
	}

	if !netcheck.MatchAny(entries, ip) {
		return ErrOutsideAllowedNetwork
	}
	return nil
}

// CheckIn records today's check-in for the employee. The fingerprint is
// stored for audit only; the gate itself is the network check plus the
// one-record-per-day uniqueness. Concurrent double check-ins are resolved
// by the unique index on (employee_id, work_date): the losing insert comes
// back as a duplicate key.
func (s *AttendanceService) CheckIn(ctx context.Context, employeeID uint, ip, fingerprint string) (*models.AttendanceRecord, error) {
	if err := s.checkNetwork(ctx, ip); err != nil {
		return nil, err
	}

	now := time.Now()
	record := &models.AttendanceRecord{
		EmployeeID:  employeeID,
		WorkDate:    workDateOf(now),
		CheckInTime: &now,
		IPAddress:   ip,
		Fingerprint: fingerprint,
	}

	if err := s.attendanceRepo.Create(ctx, record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, err
	}

	log.Printf("✅ Employee %d checked in at %s from %s", employeeID, now.Format("15:04:05"), ip)
	go s.notifyAttendance(employeeID, now, true)

	return record, nil
}

// CheckOut records today's check-out. The conditional update in
// SetCheckOut (check_out_time IS NULL) makes the write race-safe: only one
// of two concurrent check-outs lands.
func (s *AttendanceService) CheckOut(ctx context.Context, employeeID uint, ip, fingerprint string) (*models.AttendanceRecord, error) {
	if err := s.checkNetwork(ctx, ip); err != nil {
		return nil, err
	}

	now := time.Now()
	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, workDateOf(now))
	if err != nil {
		return nil, err
	}
	if record == nil || record.CheckInTime == nil {
		return nil, ErrNotCheckedInYet
	}
	if record.CheckOutTime != nil {
		return nil, ErrAlreadyCheckedOut
	}

	rows, err := s.attendanceRepo.SetCheckOut(ctx, record.ID, now)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrAlreadyCheckedOut
	}

	record.CheckOutTime = &now
	log.Printf("✅ Employee %d checked out at %s", employeeID, now.Format("15:04:05"))
	go s.notifyAttendance(employeeID, now, false)

	return record, nil
}

// notifyAttendance resolves the display name and pushes the event.
// Fire-and-forget: runs in its own goroutine with its own context.
func (s *AttendanceService) notifyAttendance(employeeID uint, at time.Time, checkIn bool) {
	if !s.notifier.Enabled() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	name := "Employee"
	if user, err := s.userRepo.GetByID(ctx, employeeID); err == nil {
		name = user.FullName
	}

	if checkIn {
		s.notifier.NotifyCheckIn(name, at)
	} else {
		s.notifier.NotifyCheckOut(name, at)
	}
}

// Today returns the employee's record for today, or nil when absent
func (s *AttendanceService) Today(ctx context.Context, employeeID uint) (*models.AttendanceRecord, error) {
	return s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, workDateOf(time.Now()))
}

// History returns the employee's attendance history, newest first
func (s *AttendanceService) History(ctx context.Context, employeeID uint, p *pagination.Params) ([]models.AttendanceRecord, int64, error) {
	return s.attendanceRepo.ListByEmployee(ctx, employeeID, p.Offset, p.Limit)
}

// ListByDate returns every record for the given date (admin view)
func (s *AttendanceService) ListByDate(ctx context.Context, date time.Time) ([]models.AttendanceRecord, error) {
	return s.attendanceRepo.ListByDate(ctx, workDateOf(date))
}

// BulkDelete removes attendance records over a date range (admin cleanup)
func (s *AttendanceService) BulkDelete(ctx context.Context, from, to time.Time) (int64, error) {
	from, to = workDateOf(from), workDateOf(to)
	if to.Before(from) {
		return 0, ErrInvalidDateRange
	}

	deleted, err := s.attendanceRepo.DeleteRange(ctx, from, to)
	if err != nil {
		return 0, err
	}

	log.Printf("✅ Deleted %d attendance records between %s and %s",
		deleted, from.Format("2006-01-02"), to.Format("2006-01-02"))
	return deleted, nil
}
