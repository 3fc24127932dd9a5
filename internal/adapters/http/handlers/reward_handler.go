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

// RewardHandler handles reward fund endpoints
type RewardHandler struct {
	rewardService *services.RewardService
}

// NewRewardHandler creates a new reward handler
func NewRewardHandler(rewardService *services.RewardService) *RewardHandler {
	return &RewardHandler{rewardService: rewardService}
}

// CreateFundBody is the fund creation payload
type CreateFundBody struct {
	Name          string  `json:"name"`
	InitialAmount float64 `json:"initial_amount"`
	StartDate     string  `json:"start_date"`
	EndDate       *string `json:"end_date"`
	Description   string  `json:"description"`
}

// DeductBody is the deduction payload
type DeductBody struct {
	RewardID    uint    `json:"reward_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// UpdateFundBody carries the administrative fund edits
type UpdateFundBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	EndDate     *string `json:"end_date"`
	Status      *string `json:"status"`
}

// Create opens a new reward fund (admin)
// @Summary Create reward fund
// @Tags rewards
// @Security BearerAuth
// @Router /api/v1/admin/rewards [post]
func (h *RewardHandler) Create(c *fiber.Ctx) error {
	var body CreateFundBody
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	startDate, err := time.ParseInLocation(dateLayout, body.StartDate, time.Local)
	if err != nil {
		return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation,
			"start_date must be in YYYY-MM-DD format")
	}

	in := services.CreateFundInput{
		Name:          body.Name,
		InitialAmount: body.InitialAmount,
		StartDate:     startDate,
		Description:   body.Description,
	}
	if body.EndDate != nil {
		endDate, err := time.ParseInLocation(dateLayout, *body.EndDate, time.Local)
		if err != nil {
			return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation,
				"end_date must be in YYYY-MM-DD format")
		}
		in.EndDate = &endDate
	}

	reward, err := h.rewardService.Create(c.Context(), in, middleware.UserID(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFundNameRequired),
			errors.Is(err, services.ErrInvalidAmount),
			errors.Is(err, services.ErrInvalidDateRange):
			return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation, err.Error())
		default:
			return response.InternalServerError(c, "Failed to create reward fund")
		}
	}

	return response.Created(c, "Reward fund created", reward)
}

// List returns reward funds
// @Summary List reward funds
// @Tags rewards
// @Security BearerAuth
// @Router /api/v1/rewards [get]
func (h *RewardHandler) List(c *fiber.Ctx) error {
	p := pagination.GetParams(c)

	rewards, total, err := h.rewardService.List(c.Context(), p)
	if err != nil {
		return response.InternalServerError(c, "Failed to list reward funds")
	}

	return response.Success(c, "", fiber.Map{
		"rewards":    rewards,
		"pagination": pagination.NewMeta(p, total),
	})
}

// Get returns a single fund
// @Summary Get reward fund
// @Tags rewards
// @Security BearerAuth
// @Router /api/v1/rewards/{id} [get]
func (h *RewardHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid reward id")
	}

	reward, err := h.rewardService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrFundNotFound) {
			return response.NotFound(c, "Reward fund not found")
		}
		return response.InternalServerError(c, "Failed to load reward fund")
	}

	return response.Success(c, "", reward)
}

// Deduct spends from a fund (admin)
// @Summary Deduct from reward fund
// @Tags rewards
// @Security BearerAuth
// @Router /api/v1/admin/rewards/deduct [post]
func (h *RewardHandler) Deduct(c *fiber.Ctx) error {
	var body DeductBody
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	reward, err := h.rewardService.Deduct(c.Context(), body.RewardID, body.Amount, body.Description, middleware.UserID(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount):
			return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation, err.Error())
		case errors.Is(err, services.ErrFundNotFound):
			return response.NotFound(c, "Reward fund not found")
		case errors.Is(err, services.ErrFundNotActive):
			return response.ErrorWithKind(c, fiber.StatusConflict, domain.KindStateConflict,
				"Reward fund is not active")
		case errors.Is(err, services.ErrInsufficientBalance):
			return response.ErrorWithKind(c, fiber.StatusConflict, domain.KindStateConflict,
				"Insufficient fund balance")
		default:
			return response.InternalServerError(c, "Failed to deduct from reward fund")
		}
	}

	return response.Success(c, "Deduction applied", reward)
}

// Update edits an active fund; status CLOSED closes it out (admin)
// @Summary Update reward fund
// @Tags rewards
// @Security BearerAuth
// @Router /api/v1/admin/rewards/{id} [put]
func (h *RewardHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid reward id")
	}

	var body UpdateFundBody
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	in := services.UpdateFundInput{
		Name:        body.Name,
		Description: body.Description,
		Status:      body.Status,
	}
	if body.EndDate != nil {
		endDate, err := time.ParseInLocation(dateLayout, *body.EndDate, time.Local)
		if err != nil {
			return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation,
				"end_date must be in YYYY-MM-DD format")
		}
		in.EndDate = &endDate
	}

	reward, err := h.rewardService.Update(c.Context(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFundNotFound):
			return response.NotFound(c, "Reward fund not found")
		case errors.Is(err, services.ErrFundNotActive):
			return response.ErrorWithKind(c, fiber.StatusConflict, domain.KindStateConflict,
				"Reward fund is not active")
		case errors.Is(err, services.ErrFundNameRequired),
			errors.Is(err, services.ErrInvalidStatusFilter):
			return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation, err.Error())
		default:
			return response.InternalServerError(c, "Failed to update reward fund")
		}
	}

	return response.Success(c, "Reward fund updated", reward)
}

// Delete removes a fund and its ledger (admin)
// @Summary Delete reward fund
// @Tags rewards
// @Security BearerAuth
// @Router /api/v1/admin/rewards/{id} [delete]
func (h *RewardHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid reward id")
	}

	if err := h.rewardService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrFundNotFound) {
			return response.NotFound(c, "Reward fund not found")
		}
		return response.InternalServerError(c, "Failed to delete reward fund")
	}

	return response.Success(c, "Reward fund deleted", nil)
}

// Ledger returns the fund's transaction history
// @Summary Reward fund ledger
// @Tags rewards
// @Security BearerAuth
// @Router /api/v1/rewards/{id}/ledger [get]
func (h *RewardHandler) Ledger(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid reward id")
	}

	entries, err := h.rewardService.Ledger(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrFundNotFound) {
			return response.NotFound(c, "Reward fund not found")
		}
		return response.InternalServerError(c, "Failed to load fund ledger")
	}

	return response.Success(c, "", entries)
}

// Stats returns the employee dashboard widget payload. Degrades to a
// success=false body with HTTP 200 so the widget hides itself instead of
// breaking the page.
// @Summary Reward stats
// @Tags rewards
// @Security BearerAuth
// @Router /api/v1/rewards/stats/me [get]
func (h *RewardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.rewardService.Stats(c.Context())
	if err != nil {
		return response.SoftFail(c, domain.KindInfra, "Reward stats are temporarily unavailable")
	}

	return response.Success(c, "", stats)
}
