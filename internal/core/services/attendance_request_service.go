package services

import (
	"context"
	"errors"
	"log"
	"time"

	"lawdesk-erp/internal/adapters/persistence/models"
	"lawdesk-erp/internal/adapters/persistence/repositories"
	"lawdesk-erp/internal/pkg/pagination"

	"gorm.io/gorm"
)

// Attendance request errors
var (
	ErrNoProposedTimesGiven    = errors.New("at least one proposed time is required")
	ErrProposedTimesOutOfOrder = errors.New("proposed check-out must not be before proposed check-in")
	ErrRequestNotFound         = errors.New("attendance request not found")
	ErrRequestAlreadyResolved  = errors.New("attendance request already resolved")
	ErrInvalidStatusFilter     = errors.New("invalid status filter")
)

// SubmitRequestInput is the payload for a correction request
type SubmitRequestInput struct {
	TargetDate       time.Time
	ProposedCheckIn  *time.Time
	ProposedCheckOut *time.Time
	Message          string
	IPAddress        string
	Fingerprint      string
}

// AttendanceRequestService handles the correction request workflow
type AttendanceRequestService struct {
	requestRepo repositories.AttendanceRequestRepository
	notifier    *NotificationService
}

// NewAttendanceRequestService creates a new attendance request service
func NewAttendanceRequestService(
	requestRepo repositories.AttendanceRequestRepository,
	notifier *NotificationService,
) *AttendanceRequestService {
	return &AttendanceRequestService{
		requestRepo: requestRepo,
		notifier:    notifier,
	}
}

// Submit files a new correction request for the employee
func (s *AttendanceRequestService) Submit(ctx context.Context, employeeID uint, in SubmitRequestInput) (*models.AttendanceRequest, error) {
	if in.ProposedCheckIn == nil && in.ProposedCheckOut == nil {
		return nil, ErrNoProposedTimesGiven
	}
	if in.ProposedCheckIn != nil && in.ProposedCheckOut != nil &&
		in.ProposedCheckOut.Before(*in.ProposedCheckIn) {
		return nil, ErrProposedTimesOutOfOrder
	}

	request := &models.AttendanceRequest{
		EmployeeID:       employeeID,
		TargetDate:       workDateOf(in.TargetDate),
		ProposedCheckIn:  in.ProposedCheckIn,
		ProposedCheckOut: in.ProposedCheckOut,
		Message:          in.Message,
		Status:           models.RequestPending,
		IPAddress:        in.IPAddress,
		Fingerprint:      in.Fingerprint,
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	log.Printf("✅ Attendance request %d submitted by employee %d for %s",
		request.ID, employeeID, request.TargetDate.Format("2006-01-02"))
	return request, nil
}

// Accept approves a pending request and applies its proposed times to the
// attendance record. The repository does both in one database transaction;
// a request that is no longer pending applies nothing.
func (s *AttendanceRequestService) Accept(ctx context.Context, requestID, approverID uint) (*models.AttendanceRequest, error) {
	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	ok, err := s.requestRepo.Accept(ctx, request, approverID, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRequestAlreadyResolved
	}

	log.Printf("✅ Attendance request %d accepted by user %d", requestID, approverID)
	go s.notifyResolved(request, models.RequestAccepted)

	return s.getRequest(ctx, requestID)
}

// Reject declines a pending request without touching any attendance record
func (s *AttendanceRequestService) Reject(ctx context.Context, requestID, approverID uint) (*models.AttendanceRequest, error) {
	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	ok, err := s.requestRepo.Reject(ctx, requestID, approverID, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRequestAlreadyResolved
	}

	log.Printf("✅ Attendance request %d rejected by user %d", requestID, approverID)
	go s.notifyResolved(request, models.RequestRejected)

	return s.getRequest(ctx, requestID)
}

func (s *AttendanceRequestService) getRequest(ctx context.Context, requestID uint) (*models.AttendanceRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return request, nil
}

func (s *AttendanceRequestService) notifyResolved(request *models.AttendanceRequest, status string) {
	if !s.notifier.Enabled() {
		return
	}
	name := "Employee"
	if request.Employee != nil {
		name = request.Employee.FullName
	}
	s.notifier.NotifyRequestResolved(name, request.TargetDate, status)
}

// ListMine returns the employee's own requests, newest first
func (s *AttendanceRequestService) ListMine(ctx context.Context, employeeID uint, p *pagination.Params) ([]models.AttendanceRequest, int64, error) {
	return s.requestRepo.ListByEmployee(ctx, employeeID, p.Offset, p.Limit)
}

// List returns all requests, optionally filtered by status (admin view)
func (s *AttendanceRequestService) List(ctx context.Context, status string, p *pagination.Params) ([]models.AttendanceRequest, int64, error) {
	switch status {
	case "", models.RequestPending, models.RequestAccepted, models.RequestRejected:
	default:
		return nil, 0, ErrInvalidStatusFilter
	}
	return s.requestRepo.List(ctx, status, p.Offset, p.Limit)
}
