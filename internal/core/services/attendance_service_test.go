package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"lawdesk-erp/internal/adapters/persistence/models"
)

func newTestAttendanceService(networks ...models.OfficeNetwork) (*AttendanceService, *fakeAttendanceRepo) {
	attendanceRepo := newFakeAttendanceRepo()
	networkRepo := &fakeNetworkRepo{networks: networks}
	userRepo := newFakeUserRepo(&models.User{ID: 1, FullName: "Jane Counsel"})
	return NewAttendanceService(attendanceRepo, networkRepo, userRepo, NewNotificationService()), attendanceRepo
}

func enabledNetwork(entry string) models.OfficeNetwork {
	return models.OfficeNetwork{ID: 1, OfficeName: "Head Office", IPAddress: entry, Status: models.NetworkEnabled}
}

func TestCheckInNetworkGate(t *testing.T) {
	tests := []struct {
		name     string
		networks []models.OfficeNetwork
		ip       string
		wantErr  error
	}{
		{
			name:     "exact address match",
			networks: []models.OfficeNetwork{enabledNetwork("203.0.113.5")},
			ip:       "203.0.113.5",
		},
		{
			name:     "cidr range match",
			networks: []models.OfficeNetwork{enabledNetwork("203.0.113.0/24")},
			ip:       "203.0.113.77",
		},
		{
			name:     "outside range",
			networks: []models.OfficeNetwork{enabledNetwork("203.0.113.0/24")},
			ip:       "198.51.100.9",
			wantErr:  ErrOutsideAllowedNetwork,
		},
		{
			name: "disabled entry does not count",
			networks: []models.OfficeNetwork{
				{ID: 1, OfficeName: "Old Office", IPAddress: "198.51.100.9", Status: models.NetworkDisabled},
			},
			ip:      "198.51.100.9",
			wantErr: ErrOutsideAllowedNetwork,
		},
		{
			name:    "empty allow-list denies everyone",
			ip:      "203.0.113.5",
			wantErr: ErrOutsideAllowedNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestAttendanceService(tt.networks...)
			_, err := svc.CheckIn(context.Background(), 1, tt.ip, "fp-1")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CheckIn() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckInTwiceSameDay(t *testing.T) {
	svc, _ := newTestAttendanceService(enabledNetwork("203.0.113.0/24"))
	ctx := context.Background()

	record, err := svc.CheckIn(ctx, 1, "203.0.113.5", "fp-1")
	if err != nil {
		t.Fatalf("first CheckIn() error = %v", err)
	}
	if record.CheckInTime == nil {
		t.Fatal("first CheckIn() left CheckInTime unset")
	}

	if _, err := svc.CheckIn(ctx, 1, "203.0.113.5", "fp-1"); !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("second CheckIn() error = %v, want ErrAlreadyCheckedIn", err)
	}
}

func TestCheckOutLifecycle(t *testing.T) {
	svc, _ := newTestAttendanceService(enabledNetwork("203.0.113.0/24"))
	ctx := context.Background()
	ip := "203.0.113.5"

	// Check-out before check-in
	if _, err := svc.CheckOut(ctx, 1, ip, "fp-1"); !errors.Is(err, ErrNotCheckedInYet) {
		t.Fatalf("CheckOut() before check-in error = %v, want ErrNotCheckedInYet", err)
	}

	checkedIn, err := svc.CheckIn(ctx, 1, ip, "fp-1")
	if err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}

	record, err := svc.CheckOut(ctx, 1, ip, "fp-1")
	if err != nil {
		t.Fatalf("CheckOut() error = %v", err)
	}
	if record.CheckOutTime == nil {
		t.Fatal("CheckOut() left CheckOutTime unset")
	}
	if record.CheckOutTime.Before(*checkedIn.CheckInTime) {
		t.Fatalf("CheckOutTime %v is before CheckInTime %v", record.CheckOutTime, checkedIn.CheckInTime)
	}

	// Second check-out
	if _, err := svc.CheckOut(ctx, 1, ip, "fp-1"); !errors.Is(err, ErrAlreadyCheckedOut) {
		t.Fatalf("second CheckOut() error = %v, want ErrAlreadyCheckedOut", err)
	}
}

func TestCheckOutFromOutsideNetwork(t *testing.T) {
	svc, _ := newTestAttendanceService(enabledNetwork("203.0.113.5"))
	ctx := context.Background()

	if _, err := svc.CheckIn(ctx, 1, "203.0.113.5", "fp-1"); err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}

	if _, err := svc.CheckOut(ctx, 1, "198.51.100.1", "fp-1"); !errors.Is(err, ErrOutsideAllowedNetwork) {
		t.Fatalf("CheckOut() error = %v, want ErrOutsideAllowedNetwork", err)
	}
}

func TestTodayReturnsNilWhenAbsent(t *testing.T) {
	svc, _ := newTestAttendanceService(enabledNetwork("203.0.113.5"))

	record, err := svc.Today(context.Background(), 42)
	if err != nil {
		t.Fatalf("Today() error = %v", err)
	}
	if record != nil {
		t.Fatalf("Today() = %+v, want nil", record)
	}
}

func TestBulkDeleteValidatesRange(t *testing.T) {
	svc, repo := newTestAttendanceService(enabledNetwork("203.0.113.5"))
	ctx := context.Background()

	if _, err := svc.CheckIn(ctx, 1, "203.0.113.5", "fp-1"); err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}

	today := workDateOf(time.Now())
	if _, err := svc.BulkDelete(ctx, today, today.AddDate(0, 0, -1)); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("BulkDelete() reversed range error = %v, want ErrInvalidDateRange", err)
	}

	deleted, err := svc.BulkDelete(ctx, today, today)
	if err != nil {
		t.Fatalf("BulkDelete() error = %v", err)
	}
	if deleted != 1 {
		t.Fatalf("BulkDelete() deleted = %d, want 1", deleted)
	}
	if len(repo.records) != 0 {
		t.Fatalf("records remaining after delete: %d", len(repo.records))
	}
}
