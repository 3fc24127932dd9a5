package handlers

import (
	"lawdesk-erp/internal/core/domain"
	"lawdesk-erp/internal/core/services"
	"lawdesk-erp/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles the admin dashboard endpoint
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Overview returns today's snapshot. Soft-fails on backend trouble so the
// admin landing page still renders.
// @Summary Admin dashboard
// @Tags dashboard
// @Security BearerAuth
// @Router /api/v1/admin/dashboard [get]
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.dashboardService.Overview(c.Context())
	if err != nil {
		return response.SoftFail(c, domain.KindInfra, "Dashboard is temporarily unavailable")
	}

	return response.Success(c, "", overview)
}
