package handlers

import (
	"time"

	"lawdesk-erp/internal/config"
	"lawdesk-erp/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles liveness and readiness checks
type HealthHandler struct{}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check reports service and database health
// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "up"
	if err := config.HealthCheck(); err != nil {
		dbStatus = "down"
	}

	status := fiber.Map{
		"status":    "ok",
		"database":  dbStatus,
		"timestamp": time.Now().Format(time.RFC3339),
	}

	if dbStatus == "down" {
		c.Status(fiber.StatusServiceUnavailable)
		status["status"] = "degraded"
		return c.JSON(response.Response{Success: false, Data: status})
	}

	return response.Success(c, "", status)
}
