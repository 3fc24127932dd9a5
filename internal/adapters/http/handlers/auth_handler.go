package handlers

import (
	"errors"

	"lawdesk-erp/internal/adapters/http/middleware"
	"lawdesk-erp/internal/core/domain"
	"lawdesk-erp/internal/core/services"
	"lawdesk-erp/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest is the login payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Register onboards a new employee (admin only)
// @Summary Register employee
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.EmpNo == "" || req.Username == "" || req.Email == "" || req.FullName == "" {
		return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation,
			"emp_no, username, email and full_name are required")
	}
	if len(req.Password) < 8 {
		return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation,
			"Password must be at least 8 characters")
	}

	user, err := h.authService.Register(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken),
			errors.Is(err, services.ErrEmailTaken),
			errors.Is(err, services.ErrEmpNoTaken):
			return response.ErrorWithKind(c, fiber.StatusConflict, domain.KindStateConflict, err.Error())
		case errors.Is(err, services.ErrInvalidRole):
			return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation, err.Error())
		default:
			return response.InternalServerError(c, "Failed to register user")
		}
	}

	return response.Created(c, "User registered successfully", user)
}

// Login authenticates and issues a token pair
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Username == "" || req.Password == "" {
		return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation,
			"Username and password are required")
	}

	tokens, user, err := h.authService.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.ErrorWithKind(c, fiber.StatusUnauthorized, domain.KindAuthDenied,
				"Invalid username or password")
		case errors.Is(err, services.ErrUserInactive):
			return response.ErrorWithKind(c, fiber.StatusForbidden, domain.KindAuthDenied,
				"Account is deactivated")
		default:
			return response.InternalServerError(c, "Failed to login")
		}
	}

	return response.Success(c, "Login successful", fiber.Map{
		"tokens": tokens,
		"user":   user,
	})
}

// Refresh rotates a refresh token
// @Summary Refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.RefreshToken == "" {
		return response.ErrorWithKind(c, fiber.StatusBadRequest, domain.KindValidation,
			"refresh_token is required")
	}

	tokens, err := h.authService.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRefreshToken):
			return response.ErrorWithKind(c, fiber.StatusUnauthorized, domain.KindAuthDenied,
				"Invalid or expired refresh token")
		case errors.Is(err, services.ErrUserInactive):
			return response.ErrorWithKind(c, fiber.StatusForbidden, domain.KindAuthDenied,
				"Account is deactivated")
		default:
			return response.InternalServerError(c, "Failed to refresh tokens")
		}
	}

	return response.Success(c, "Tokens refreshed", tokens)
}

// Logout revokes the presented refresh token
// @Summary Logout
// @Tags auth
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.authService.Logout(c.Context(), req.RefreshToken); err != nil {
		return response.InternalServerError(c, "Failed to logout")
	}

	return response.Success(c, "Logged out successfully", nil)
}

// LogoutAll revokes every session of the current user
// @Summary Logout everywhere
// @Tags auth
// @Security BearerAuth
// @Router /api/v1/auth/logout-all [post]
func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	if err := h.authService.LogoutAll(c.Context(), userID); err != nil {
		return response.InternalServerError(c, "Failed to logout")
	}

	return response.Success(c, "All sessions revoked", nil)
}

// Me returns the current user's profile
// @Summary Current user
// @Tags auth
// @Security BearerAuth
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	user, err := h.authService.Me(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to load profile")
	}

	return response.Success(c, "", user)
}
