package handlers

import (
	"errors"
	"strconv"

	"lawdesk-erp/internal/adapters/http/middleware"
	"lawdesk-erp/internal/core/domain"
	"lawdesk-erp/internal/core/services"
	"lawdesk-erp/internal/pkg/pagination"
	"lawdesk-erp/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles employee directory endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ChangePasswordRequest is the change-password payload
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// SetRoleRequest is the role change payload
type SetRoleRequest struct {
	Role string `json:"role"`
}

// SetActiveRequest is the activation payload
type SetActiveRequest struct {
	IsActive bool `json:"is_active"`
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// List returns the employee directory (admin)
// @Summary List employees
// @Tags users
// @Security BearerAuth
// @Router /api/v1/admin/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	p := pagination.GetParams(c)

	users, total, err := h.userService.List(c.Context(), p)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	return response.Success(c, "", fiber.Map{
		"users":      users,
		"pagination": pagination.NewMeta(p, total),
	})
}

// Get returns a single employee profile (admin)
// @Summary Get employee
// @Tags users
// @Security BearerAuth
// @Router /api/v1/admin/users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	user, err := h.userService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to load user")
	}

	return response.Success(c, "", user)
}

// UpdateMe edits the current user's own profile
// @Summary Update own profile
// @Tags users
// @Security BearerAuth
// @Router /api/v1/users/me [put]
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	return h.update(c, middleware.UserID(c))
}

// Update edits any employee profile (admin)
// @Summary Update employee
// @Tags users
// @Security BearerAuth
// @Router /api/v1/admin/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}
	return h.update(c, id)
}

func (h *UserHandler) update(c *fiber.Ctx, id uint) error {
	var req services.UpdateProfileInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.Update(c.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, services.ErrEmailTaken):
			return response.ErrorWithKind(c, fiber.StatusConflict, domain.KindStateConflict, err.Error())
		default:
			return response.InternalServerError(c, "Failed to update user")
		}
	}

	return response.Success(c, "Profile updated", user)
}

// ChangePassword changes the current user's password
// @Summary Change password
// @Tags users
// @Security BearerAuth
// @Router /api/v1/users/me/password [put]
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if len(req.NewPassword) < 8 {
		return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation,
			"New password must be at least 8 characters")
	}

	err := h.userService.ChangePassword(c.Context(), middleware.UserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.ErrorWithKind(c, fiber.StatusUnauthorized, domain.KindAuthDenied,
				"Current password is incorrect")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to change password")
		}
	}

	return response.Success(c, "Password changed, please login again", nil)
}

// SetRole changes an employee's role (admin)
// @Summary Set employee role
// @Tags users
// @Security BearerAuth
// @Router /api/v1/admin/users/{id}/role [put]
func (h *UserHandler) SetRole(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	var req SetRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.SetRole(c.Context(), id, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, services.ErrInvalidRole):
			return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation, err.Error())
		default:
			return response.InternalServerError(c, "Failed to update role")
		}
	}

	return response.Success(c, "Role updated", user)
}

// SetActive activates or deactivates an account (admin)
// @Summary Activate or deactivate employee
// @Tags users
// @Security BearerAuth
// @Router /api/v1/admin/users/{id}/active [put]
func (h *UserHandler) SetActive(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	var req SetActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.SetActive(c.Context(), id, req.IsActive, middleware.UserID(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, services.ErrCannotDeactivateSelf):
			return response.ErrorWithKind(c, fiber.StatusConflict, domain.KindStateConflict, err.Error())
		default:
			return response.InternalServerError(c, "Failed to update account state")
		}
	}

	return response.Success(c, "Account state updated", user)
}
