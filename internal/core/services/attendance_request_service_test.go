package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"lawdesk-erp/internal/adapters/persistence/models"
)

func newTestRequestService() (*AttendanceRequestService, *fakeRequestRepo, *fakeAttendanceRepo) {
	attendanceRepo := newFakeAttendanceRepo()
	requestRepo := newFakeRequestRepo(attendanceRepo)
	return NewAttendanceRequestService(requestRepo, NewNotificationService()), requestRepo, attendanceRepo
}

func timesFor(day time.Time, inHour, outHour int) (*time.Time, *time.Time) {
	in := day.Add(time.Duration(inHour) * time.Hour)
	out := day.Add(time.Duration(outHour) * time.Hour)
	return &in, &out
}

func TestSubmitValidation(t *testing.T) {
	svc, _, _ := newTestRequestService()
	day := workDateOf(time.Now().AddDate(0, 0, -1))
	in, out := timesFor(day, 9, 18)

	tests := []struct {
		name    string
		input   SubmitRequestInput
		wantErr error
	}{
		{
			name:    "no proposed times",
			input:   SubmitRequestInput{TargetDate: day},
			wantErr: ErrNoProposedTimesGiven,
		},
		{
			name:    "check-out before check-in",
			input:   SubmitRequestInput{TargetDate: day, ProposedCheckIn: out, ProposedCheckOut: in},
			wantErr: ErrProposedTimesOutOfOrder,
		},
		{
			name:  "check-in only",
			input: SubmitRequestInput{TargetDate: day, ProposedCheckIn: in},
		},
		{
			name:  "check-out only",
			input: SubmitRequestInput{TargetDate: day, ProposedCheckOut: out},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request, err := svc.Submit(context.Background(), 1, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Submit() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && request.Status != models.RequestPending {
				t.Fatalf("Submit() status = %s, want PENDING", request.Status)
			}
		})
	}
}

func TestAcceptCreatesMissingRecord(t *testing.T) {
	svc, _, attendanceRepo := newTestRequestService()
	ctx := context.Background()
	day := workDateOf(time.Now().AddDate(0, 0, -1))
	in, out := timesFor(day, 9, 18)

	request, err := svc.Submit(ctx, 7, SubmitRequestInput{
		TargetDate:       day,
		ProposedCheckIn:  in,
		ProposedCheckOut: out,
		Message:          "forgot to check in",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	resolved, err := svc.Accept(ctx, request.ID, 99)
	if err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	if resolved.Status != models.RequestAccepted {
		t.Fatalf("Accept() status = %s, want ACCEPTED", resolved.Status)
	}
	if resolved.ResolvedBy == nil || *resolved.ResolvedBy != 99 {
		t.Fatalf("Accept() resolver = %v, want 99", resolved.ResolvedBy)
	}

	record, err := attendanceRepo.GetByEmployeeAndDate(ctx, 7, day)
	if err != nil {
		t.Fatalf("GetByEmployeeAndDate() error = %v", err)
	}
	if record == nil {
		t.Fatal("Accept() did not create the attendance record")
	}
	if record.CheckInTime == nil || !record.CheckInTime.Equal(*in) {
		t.Fatalf("record CheckInTime = %v, want %v", record.CheckInTime, in)
	}
	if record.CheckOutTime == nil || !record.CheckOutTime.Equal(*out) {
		t.Fatalf("record CheckOutTime = %v, want %v", record.CheckOutTime, out)
	}
}

func TestResolutionIsTerminal(t *testing.T) {
	svc, _, _ := newTestRequestService()
	ctx := context.Background()
	day := workDateOf(time.Now().AddDate(0, 0, -1))
	in, _ := timesFor(day, 9, 18)

	request, err := svc.Submit(ctx, 7, SubmitRequestInput{TargetDate: day, ProposedCheckIn: in})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if _, err := svc.Accept(ctx, request.ID, 99); err != nil {
		t.Fatalf("Accept() error = %v", err)
	}

	if _, err := svc.Accept(ctx, request.ID, 99); !errors.Is(err, ErrRequestAlreadyResolved) {
		t.Fatalf("second Accept() error = %v, want ErrRequestAlreadyResolved", err)
	}
	if _, err := svc.Reject(ctx, request.ID, 99); !errors.Is(err, ErrRequestAlreadyResolved) {
		t.Fatalf("Reject() after accept error = %v, want ErrRequestAlreadyResolved", err)
	}
}

func TestRejectLeavesRecordsAlone(t *testing.T) {
	svc, _, attendanceRepo := newTestRequestService()
	ctx := context.Background()
	day := workDateOf(time.Now().AddDate(0, 0, -1))
	in, _ := timesFor(day, 9, 18)

	request, err := svc.Submit(ctx, 7, SubmitRequestInput{TargetDate: day, ProposedCheckIn: in})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	resolved, err := svc.Reject(ctx, request.ID, 99)
	if err != nil {
		t.Fatalf("Reject() error = %v", err)
	}
	if resolved.Status != models.RequestRejected {
		t.Fatalf("Reject() status = %s, want REJECTED", resolved.Status)
	}

	record, err := attendanceRepo.GetByEmployeeAndDate(ctx, 7, day)
	if err != nil {
		t.Fatalf("GetByEmployeeAndDate() error = %v", err)
	}
	if record != nil {
		t.Fatalf("Reject() created an attendance record: %+v", record)
	}
}

func TestResolveUnknownRequest(t *testing.T) {
	svc, _, _ := newTestRequestService()

	if _, err := svc.Accept(context.Background(), 404, 99); !errors.Is(err, ErrRequestNotFound) {
		t.Fatalf("Accept() error = %v, want ErrRequestNotFound", err)
	}
}

func TestListRejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newTestRequestService()

	_, _, err := svc.List(context.Background(), "ARCHIVED", testParams())
	if !errors.Is(err, ErrInvalidStatusFilter) {
		t.Fatalf("List() error = %v, want ErrInvalidStatusFilter", err)
	}
}
