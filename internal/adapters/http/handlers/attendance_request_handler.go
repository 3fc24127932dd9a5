package handlers

import (
	"errors"
	"time"

	"lawdesk-erp/internal/adapters/http/middleware"
	"lawdesk-erp/internal/core/domain"
	"lawdesk-erp/internal/core/services"
	"lawdesk-erp/internal/pkg/pagination"
	"lawdesk-erp/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AttendanceRequestHandler handles correction request endpoints
type AttendanceRequestHandler struct {
	requestService *services.AttendanceRequestService
}

// NewAttendanceRequestHandler creates a new attendance request handler
func NewAttendanceRequestHandler(requestService *services.AttendanceRequestService) *AttendanceRequestHandler {
	return &AttendanceRequestHandler{requestService: requestService}
}

// SubmitRequestBody is the correction request payload. Proposed times are
// RFC3339 timestamps; either may be omitted but not both.
type SubmitRequestBody struct {
	TargetDate       string  `json:"target_date"`
	ProposedCheckIn  *string `json:"proposed_check_in"`
	ProposedCheckOut *string `json:"proposed_check_out"`
	Message          string  `json:"message"`
	Fingerprint      string  `json:"fingerprint"`
}

// Submit files a correction request
// @Summary Submit attendance request
// @Tags attendance-requests
// @Security BearerAuth
// @Router /api/v1/attendance-requests [post]
func (h *AttendanceRequestHandler) Submit(c *fiber.Ctx) error {
	var body SubmitRequestBody
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	targetDate, err := time.ParseInLocation(dateLayout, body.TargetDate, time.Local)
	if err != nil {
		return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation,
			"target_date must be in YYYY-MM-DD format")
	}

	in := services.SubmitRequestInput{
		TargetDate:  targetDate,
		Message:     body.Message,
		IPAddress:   c.IP(),
		Fingerprint: body.Fingerprint,
	}

	if body.ProposedCheckIn != nil {
		t, err := time.Parse(time.RFC3339, *body.ProposedCheckIn)
		if err != nil {
			return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation,
				"proposed_check_in must be an RFC3339 timestamp")
		}
		in.ProposedCheckIn = &t
	}
	if body.ProposedCheckOut != nil {
		t, err := time.Parse(time.RFC3339, *body.ProposedCheckOut)
		if err != nil {
			return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation,
				"proposed_check_out must be an RFC3339 timestamp")
		}
		in.ProposedCheckOut = &t
	}

	request, err := h.requestService.Submit(c.Context(), middleware.UserID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoProposedTimesGiven):
			return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation,
				"At least one of proposed_check_in or proposed_check_out is required")
		case errors.Is(err, services.ErrProposedTimesOutOfOrder):
			return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation,
				"proposed_check_out must not be before proposed_check_in")
		default:
			return response.InternalServerError(c, "Failed to submit request")
		}
	}

	return response.Created(c, "Attendance request submitted", request)
}

// ListMine returns the current user's requests
// @Summary My attendance requests
// @Tags attendance-requests
// @Security BearerAuth
// @Router /api/v1/attendance-requests/mine [get]
func (h *AttendanceRequestHandler) ListMine(c *fiber.Ctx) error {
	p := pagination.GetParams(c)

	requests, total, err := h.requestService.ListMine(c.Context(), middleware.UserID(c), p)
	if err != nil {
		return response.InternalServerError(c, "Failed to load requests")
	}

	return response.Success(c, "", fiber.Map{
		"requests":   requests,
		"pagination": pagination.NewMeta(p, total),
	})
}

// List returns all requests, optionally filtered by status (admin)
// @Summary List attendance requests
// @Tags attendance-requests
// @Security BearerAuth
// @Router /api/v1/admin/attendance-requests [get]
func (h *AttendanceRequestHandler) List(c *fiber.Ctx) error {
	p := pagination.GetParams(c)
	status := c.Query("status")

	requests, total, err := h.requestService.List(c.Context(), status, p)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatusFilter) {
			return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation,
				"status must be PENDING, ACCEPTED or REJECTED")
		}
		return response.InternalServerError(c, "Failed to load requests")
	}

	return response.Success(c, "", fiber.Map{
		"requests":   requests,
		"pagination": pagination.NewMeta(p, total),
	})
}

// Accept approves a pending request (admin)
// @Summary Accept attendance request
// @Tags attendance-requests
// @Security BearerAuth
// @Router /api/v1/admin/attendance-requests/{id}/accept [put]
func (h *AttendanceRequestHandler) Accept(c *fiber.Ctx) error {
	return h.resolve(c, true)
}

// Reject declines a pending request (admin)
// @Summary Reject attendance request
// @Tags attendance-requests
// @Security BearerAuth
// @Router /api/v1/admin/attendance-requests/{id}/reject [put]
func (h *AttendanceRequestHandler) Reject(c *fiber.Ctx) error {
	return h.resolve(c, false)
}

func (h *AttendanceRequestHandler) resolve(c *fiber.Ctx, accept bool) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid request id")
	}

	var request interface{}
	if accept {
		request, err = h.requestService.Accept(c.Context(), id, middleware.UserID(c))
	} else {
		request, err = h.requestService.Reject(c.Context(), id, middleware.UserID(c))
	}

	if err != nil {
		switch {
		case errors.Is(err, services.ErrRequestNotFound):
			return response.NotFound(c, "Attendance request not found")
		case errors.Is(err, services.ErrRequestAlreadyResolved):
			return response.ErrorWithKind(c, fiber.StatusConflict, domain.KindStateConflict,
				"Request has already been resolved")
		default:
			return response.InternalServerError(c, "Failed to resolve request")
		}
	}

	message := "Request rejected"
	if accept {
		message = "Request accepted"
	}
	return response.Success(c, message, request)
}
