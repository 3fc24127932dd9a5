package handlers

import (
	"errors"

	"lawdesk-erp/internal/core/domain"
	"lawdesk-erp/internal/core/services"
	"lawdesk-erp/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// OfficeNetworkHandler handles the office allow-list endpoints (admin)
type OfficeNetworkHandler struct {
	networkService *services.OfficeNetworkService
}

// NewOfficeNetworkHandler creates a new office network handler
func NewOfficeNetworkHandler(networkService *services.OfficeNetworkService) *OfficeNetworkHandler {
	return &OfficeNetworkHandler{networkService: networkService}
}

// Create adds an allow-list entry
// @Summary Add office network
// @Tags office-networks
// @Security BearerAuth
// @Router /api/v1/admin/office-networks [post]
func (h *OfficeNetworkHandler) Create(c *fiber.Ctx) error {
	var req services.NetworkInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.OfficeName == "" || req.IPAddress == "" {
		return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation,
			"office_name and ip_address are required")
	}

	network, err := h.networkService.Create(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidNetworkEntry),
			errors.Is(err, services.ErrInvalidNetworkStatus):
			return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation, err.Error())
		default:
			return response.InternalServerError(c, "Failed to create office network")
		}
	}

	return response.Created(c, "Office network added", network)
}

// List returns every allow-list entry
// @Summary List office networks
// @Tags office-networks
// @Security BearerAuth
// @Router /api/v1/admin/office-networks [get]
func (h *OfficeNetworkHandler) List(c *fiber.Ctx) error {
	networks, err := h.networkService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list office networks")
	}

	return response.Success(c, "", networks)
}

// Get returns a single entry
// @Summary Get office network
// @Tags office-networks
// @Security BearerAuth
// @Router /api/v1/admin/office-networks/{id} [get]
func (h *OfficeNetworkHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid network id")
	}

	network, err := h.networkService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNetworkNotFound) {
			return response.NotFound(c, "Office network not found")
		}
		return response.InternalServerError(c, "Failed to load office network")
	}

	return response.Success(c, "", network)
}

// Update rewrites an entry
// @Summary Update office network
// @Tags office-networks
// @Security BearerAuth
// @Router /api/v1/admin/office-networks/{id} [put]
func (h *OfficeNetworkHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid network id")
	}

	var req services.NetworkInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	network, err := h.networkService.Update(c.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNetworkNotFound):
			return response.NotFound(c, "Office network not found")
		case errors.Is(err, services.ErrInvalidNetworkEntry),
			errors.Is(err, services.ErrInvalidNetworkStatus):
			return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation, err.Error())
		default:
			return response.InternalServerError(c, "Failed to update office network")
		}
	}

	return response.Success(c, "Office network updated", network)
}

// Delete removes an entry
// @Summary Delete office network
// @Tags office-networks
// @Security BearerAuth
// @Router /api/v1/admin/office-networks/{id} [delete]
func (h *OfficeNetworkHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid network id")
	}

	if err := h.networkService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrNetworkNotFound) {
			return response.NotFound(c, "Office network not found")
		}
		return response.InternalServerError(c, "Failed to delete office network")
	}

	return response.Success(c, "Office network deleted", nil)
}
