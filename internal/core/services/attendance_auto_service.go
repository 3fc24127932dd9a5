package services

import (
	"context"
	"log"
	"time"

	"lawdesk-erp/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// AttendanceAutoService runs the daily missing-check-out reminder. The
// schedule comes from config (default 18:30 office time).
type AttendanceAutoService struct {
	cron           *cron.Cron
	schedule       string
	attendanceRepo repositories.AttendanceRepository
	userRepo       repositories.UserRepository
	notifier       *NotificationService
}

// NewAttendanceAutoService creates a new attendance auto service
func NewAttendanceAutoService(
	schedule string,
	attendanceRepo repositories.AttendanceRepository,
	userRepo repositories.UserRepository,
	notifier *NotificationService,
) *AttendanceAutoService {
	return &AttendanceAutoService{
		cron:           cron.New(),
		schedule:       schedule,
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		notifier:       notifier,
	}
}

// Start schedules the reminder job
func (s *AttendanceAutoService) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.remindMissingCheckOut); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("🚀 Attendance reminder scheduled [%s]", s.schedule)
	return nil
}

// Stop halts the scheduler and waits for a running job to finish
func (s *AttendanceAutoService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("✅ Attendance reminder stopped")
}

// remindMissingCheckOut notifies everyone who checked in today but never
// checked out
func (s *AttendanceAutoService) remindMissingCheckOut() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	today := workDateOf(time.Now())
	records, err := s.attendanceRepo.ListMissingCheckOut(ctx, today)
	if err != nil {
		log.Printf("❌ Missing check-out query failed: %v", err)
		return
	}
	if len(records) == 0 {
		return
	}

	log.Printf("⏰ %d employees missing check-out for %s", len(records), today.Format("2006-01-02"))

	if !s.notifier.Enabled() {
		return
	}

	for _, record := range records {
		name := "Employee"
		if user, err := s.userRepo.GetByID(ctx, record.EmployeeID); err == nil {
			name = user.FullName
		}
		s.notifier.NotifyMissingCheckOut(name, today)
	}
}
