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

// dateLayout is the wire format for calendar dates
const dateLayout = "2006-01-02"

// AttendanceHandler handles check-in/check-out endpoints
type AttendanceHandler struct {
	attendanceService *services.AttendanceService
	qrService         *services.QRService
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(
	attendanceService *services.AttendanceService,
	qrService *services.QRService,
) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
		qrService:         qrService,
	}
}

// CheckRequest is the check-in/check-out payload. The caller's IP is taken
// from the connection, never from the body: a client-asserted address
// would let anyone claim to be in the office.
type CheckRequest struct {
	Fingerprint string `json:"fingerprint"`
}

// CheckIn records today's check-in
// @Summary Check in
// @Tags attendance
// @Security BearerAuth
// @Router /api/v1/attendance/check-in [post]
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	var req CheckRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	record, err := h.attendanceService.CheckIn(c.Context(), middleware.UserID(c), c.IP(), req.Fingerprint)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOutsideAllowedNetwork):
			return response.ErrorWithKind(c, fiber.StatusForbidden, domain.KindAuthDenied,
				"Check-in is only allowed from the office network")
		case errors.Is(err, services.ErrAlreadyCheckedIn):
			return response.ErrorWithKind(c, fiber.StatusConflict, domain.KindStateConflict,
				"You have already checked in today")
		default:
			return response.InternalServerError(c, "Failed to check in")
		}
	}

	return response.Created(c, "Checked in successfully", record)
}

// CheckOut records today's check-out
// @Summary Check out
// @Tags attendance
// @Security BearerAuth
// @Router /api/v1/attendance/check-out [post]
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	var req CheckRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	record, err := h.attendanceService.CheckOut(c.Context(), middleware.UserID(c), c.IP(), req.Fingerprint)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOutsideAllowedNetwork):
			return response.ErrorWithKind(c, fiber.StatusForbidden, domain.KindAuthDenied,
				"Check-out is only allowed from the office network")
		case errors.Is(err, services.ErrNotCheckedInYet):
			return response.ErrorWithKind(c, fiber.StatusConflict, domain.KindStateConflict,
				"You have not checked in today")
		case errors.Is(err, services.ErrAlreadyCheckedOut):
			return response.ErrorWithKind(c, fiber.StatusConflict, domain.KindStateConflict,
				"You have already checked out today")
		default:
			return response.InternalServerError(c, "Failed to check out")
		}
	}

	return response.Success(c, "Checked out successfully", record)
}

// Today returns the current user's record for today
// @Summary Today's attendance
// @Tags attendance
// @Security BearerAuth
// @Router /api/v1/attendance/today [get]
func (h *AttendanceHandler) Today(c *fiber.Ctx) error {
	record, err := h.attendanceService.Today(c.Context(), middleware.UserID(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to load today's attendance")
	}

	return response.Success(c, "", record)
}

// History returns the current user's attendance history
// @Summary Attendance history
// @Tags attendance
// @Security BearerAuth
// @Router /api/v1/attendance/history [get]
func (h *AttendanceHandler) History(c *fiber.Ctx) error {
	p := pagination.GetParams(c)

	records, total, err := h.attendanceService.History(c.Context(), middleware.UserID(c), p)
	if err != nil {
		return response.InternalServerError(c, "Failed to load attendance history")
	}

	return response.Success(c, "", fiber.Map{
		"records":    records,
		"pagination": pagination.NewMeta(p, total),
	})
}

// QRCode returns the office check-in QR code
// @Summary Office QR code
// @Tags attendance
// @Security BearerAuth
// @Router /api/v1/attendance/qr-code [get]
func (h *AttendanceHandler) QRCode(c *fiber.Ctx) error {
	access, err := h.qrService.GetAccess(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to generate QR code")
	}

	return response.Success(c, "", access)
}

// RotateQRCode replaces the office QR access token (admin)
// @Summary Rotate office QR code
// @Tags attendance
// @Security BearerAuth
// @Router /api/v1/admin/qr-code/rotate [post]
func (h *AttendanceHandler) RotateQRCode(c *fiber.Ctx) error {
	access, err := h.qrService.Rotate(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to rotate QR code")
	}

	return response.Success(c, "QR access token rotated", access)
}

// ListByDate returns every record for one date (admin)
// @Summary Attendance by date
// @Tags attendance
// @Security BearerAuth
// @Router /api/v1/admin/attendance [get]
func (h *AttendanceHandler) ListByDate(c *fiber.Ctx) error {
	dateStr := c.Query("date", time.Now().Format(dateLayout))
	date, err := time.ParseInLocation(dateLayout, dateStr, time.Local)
	if err != nil {
		return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation,
			"date must be in YYYY-MM-DD format")
	}

	records, err := h.attendanceService.ListByDate(c.Context(), date)
	if err != nil {
		return response.InternalServerError(c, "Failed to load attendance")
	}

	return response.Success(c, "", fiber.Map{
		"date":    date.Format(dateLayout),
		"records": records,
	})
}

// BulkDeleteRequest carries the admin cleanup range
type BulkDeleteRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// BulkDelete removes records over a date range (admin)
// @Summary Bulk delete attendance
// @Tags attendance
// @Security BearerAuth
// @Router /api/v1/admin/attendance [delete]
func (h *AttendanceHandler) BulkDelete(c *fiber.Ctx) error {
	var req BulkDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	from, err := time.ParseInLocation(dateLayout, req.From, time.Local)
	if err != nil {
		return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation,
			"from must be in YYYY-MM-DD format")
	}
	to, err := time.ParseInLocation(dateLayout, req.To, time.Local)
	if err != nil {
		return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation,
			"to must be in YYYY-MM-DD format")
	}

	deleted, err := h.attendanceService.BulkDelete(c.Context(), from, to)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDateRange) {
			return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation,
				"to must not be before from")
		}
		return response.InternalServerError(c, "Failed to delete attendance records")
	}

	return response.Success(c, "Attendance records deleted", fiber.Map{"deleted": deleted})
}
