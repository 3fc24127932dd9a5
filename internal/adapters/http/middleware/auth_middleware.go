package middleware

import (
	"strings"

	"lawdesk-erp/internal/adapters/persistence/models"
	"lawdesk-erp/internal/config"
	"lawdesk-erp/internal/pkg/jwt"
	"lawdesk-erp/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by AuthMiddleware
const (
	LocalUserID   = "user_id"
	LocalEmpNo    = "emp_no"
	LocalUsername = "username"
	LocalRole     = "role"
)

// AuthMiddleware validates the bearer token and stores the claims in locals
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "Missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return response.Unauthorized(c, "Invalid authorization header format")
		}

		claims, err := jwt.ValidateAccessToken(parts[1], config.AppConfig.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Token has expired")
			}
			return response.Unauthorized(c, "Invalid token")
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmpNo, claims.EmpNo)
		c.Locals(LocalUsername, claims.Username)
		c.Locals(LocalRole, claims.Role)

		return c.Next()
	}
}

// RoleMiddleware allows only the listed roles past
func RoleMiddleware(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalRole).(string)
		if !ok {
			return response.Unauthorized(c, "Missing authentication")
		}

		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		return response.Forbidden(c, "Insufficient permissions")
	}
}

// AdminOnly restricts a route to administrators
func AdminOnly() fiber.Handler {
	return RoleMiddleware(models.RoleAdmin)
}

// UserID extracts the authenticated user id from locals
func UserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals(LocalUserID).(uint); ok {
		return id
	}
	return 0
}

// Role extracts the authenticated role from locals
func Role(c *fiber.Ctx) string {
	if role, ok := c.Locals(LocalRole).(string); ok {
		return role
	}
	return ""
}
