package handlers

import (
	"errors"

	"watchstore/internal/middleware"
	"watchstore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles HTTP requests for admin authentication.
type AdminHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(authService *services.AuthService) *AdminHandler {
	return &AdminHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the admin routes with the Fiber app.
func (h *AdminHandler) RegisterRoutes(router fiber.Router, adminGate fiber.Handler) {
	adminRoutes := router.Group("/admin")
	adminRoutes.Post("/login", h.HandleLogin)
	adminRoutes.Get("/profile", adminGate, h.HandleProfile)
}

// HandleLogin handles admin login and issues a token carrying the admin role.
func (h *AdminHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Email and password are required",
		})
	}

	token, admin, err := h.authService.LoginAdmin(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid email or password",
			})
		}
		return fail(c, "Login failed", err)
	}

	return c.JSON(fiber.Map{
		"message": "Admin login successful",
		"token":   token,
		"admin": fiber.Map{
			"id":    admin.ID,
			"email": admin.Email,
		},
	})
}

// HandleProfile returns the authenticated admin's own record.
func (h *AdminHandler) HandleProfile(c *fiber.Ctx) error {
	adminID, _ := c.Locals(middleware.LocalUserID).(string)

	admin, err := h.authService.GetAdminProfile(adminID)
	if err != nil {
		if services.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Admin not found",
			})
		}
		return fail(c, "Error fetching profile", err)
	}

	return c.JSON(admin)
}
