package middleware

import (
	"strings"

	"watchstore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Fiber locals keys set by the gates below.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRole   = "role"
)

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Returns "" when the header is absent or malformed.
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// AuthRequired gates a route behind a valid bearer token. A missing token is
// 401; a token that fails verification is 403 — no distinction is made
// between malformed and expired. On success the decoded claims become the
// request's principal via Fiber locals.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Access token required",
			})
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals(LocalUserID, claims["id"])
		c.Locals(LocalEmail, claims["email"])
		if role, ok := claims["role"].(string); ok {
			c.Locals(LocalRole, role)
		}

		return c.Next()
	}
}

// AdminRequired is AuthRequired plus a role check: the decoded claim set
// must carry role "admin".
func AdminRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Admin token required",
			})
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Invalid or expired admin token",
			})
		}
		if !services.IsAdminClaims(claims) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Admin access required",
			})
		}

		c.Locals(LocalUserID, claims["id"])
		c.Locals(LocalEmail, claims["email"])
		c.Locals(LocalRole, services.RoleAdmin)

		return c.Next()
	}
}
