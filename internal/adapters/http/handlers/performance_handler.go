package handlers

import (
	"errors"
	"time"

	"lawdesk-erp/internal/adapters/http/middleware"
	"lawdesk-erp/internal/core/domain"
	"lawdesk-erp/internal/core/services"
	"lawdesk-erp/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PerformanceHandler handles performance score endpoints
type PerformanceHandler struct {
	performanceService *services.PerformanceService
}

// NewPerformanceHandler creates a new performance handler
func NewPerformanceHandler(performanceService *services.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{performanceService: performanceService}
}

// parsePeriod reads the from/to query params, defaulting to the current
// calendar month
func parsePeriod(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now()
	defaultFrom := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	defaultTo := defaultFrom.AddDate(0, 1, -1)

	from := defaultFrom
	to := defaultTo

	if s := c.Query("from"); s != "" {
		parsed, err := time.ParseInLocation(dateLayout, s, time.Local)
		if err != nil {
			return from, to, errors.New("from must be in YYYY-MM-DD format")
		}
		from = parsed
	}
	if s := c.Query("to"); s != "" {
		parsed, err := time.ParseInLocation(dateLayout, s, time.Local)
		if err != nil {
			return from, to, errors.New("to must be in YYYY-MM-DD format")
		}
		to = parsed
	}

	if to.Before(from) {
		return from, to, errors.New("to must not be before from")
	}
	return from, to, nil
}

// Me returns the current user's performance score
// @Summary My performance score
// @Tags performance
// @Security BearerAuth
// @Router /api/v1/performance/me [get]
func (h *PerformanceHandler) Me(c *fiber.Ctx) error {
	from, to, err := parsePeriod(c)
	if err != nil {
		return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation, err.Error())
	}

	report, err := h.performanceService.Score(c.Context(), middleware.UserID(c), from, to)
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Failed to compute performance score")
	}

	return response.Success(c, "", report)
}

// Employee returns one employee's score (admin)
// @Summary Employee performance score
// @Tags performance
// @Security BearerAuth
// @Router /api/v1/admin/performance/{id} [get]
func (h *PerformanceHandler) Employee(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid employee id")
	}

	from, to, err := parsePeriod(c)
	if err != nil {
		return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation, err.Error())
	}

	report, err := h.performanceService.Score(c.Context(), id, from, to)
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Failed to compute performance score")
	}

	return response.Success(c, "", report)
}

// Leaderboard ranks all employees over the period (admin)
// @Summary Performance leaderboard
// @Tags performance
// @Security BearerAuth
// @Router /api/v1/admin/performance [get]
func (h *PerformanceHandler) Leaderboard(c *fiber.Ctx) error {
	from, to, err := parsePeriod(c)
	if err != nil {
		return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation, err.Error())
	}

	reports, err := h.performanceService.Leaderboard(c.Context(), from, to)
	if err != nil {
		return response.InternalServerError(c, "Failed to build leaderboard")
	}

	return response.Success(c, "", fiber.Map{
		"from":        from.Format(dateLayout),
		"to":          to.Format(dateLayout),
		"leaderboard": reports,
	})
}
