package handlers

import (
	"errors"

	"watchstore/internal/middleware"
	"watchstore/internal/models"
	"watchstore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app. The "/user"
// route must precede "/:id" so it is not captured as an id.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, userGate, adminGate fiber.Handler) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", userGate, h.HandleCreateOrder)
	orderRoutes.Get("/user", userGate, h.HandleGetUserOrders)
	orderRoutes.Get("/", adminGate, h.HandleGetAllOrders)
	orderRoutes.Put("/:id/status", adminGate, h.HandleUpdateOrderStatus)
	orderRoutes.Get("/:id", userGate, h.HandleGetOrderByID)
}

// principal pulls the authenticated subject id and admin flag out of the
// request locals set by the gates.
func principal(c *fiber.Ctx) (string, bool) {
	userID, _ := c.Locals(middleware.LocalUserID).(string)
	role, _ := c.Locals(middleware.LocalRole).(string)
	return userID, role == services.RoleAdmin
}

// HandleCreateOrder creates a new order for the authenticated user.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req models.Order
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	userID, _ := principal(c)

	createdOrder, err := h.service.CreateOrder(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "All order fields are required",
				"error":   err.Error(),
			})
		case services.IsNotFound(err):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		default:
			return fail(c, "Error creating order", err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order created successfully",
		"order":   createdOrder,
	})
}

// HandleGetUserOrders lists the authenticated user's own orders.
func (h *OrderHandler) HandleGetUserOrders(c *fiber.Ctx) error {
	userID, _ := principal(c)

	orders, err := h.service.GetUserOrders(userID)
	if err != nil {
		return fail(c, "Error fetching orders", err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID fetches one order. The service rejects requesters who
// neither own the order nor hold the admin role.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	userID, isAdmin := principal(c)

	order, err := h.service.GetOrderByID(userID, isAdmin, c.Params("id"))
	if err != nil {
		switch {
		case services.IsNotFound(err):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		case errors.Is(err, services.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Unauthorized",
			})
		default:
			return fail(c, "Error fetching order", err)
		}
	}
	return c.JSON(order)
}

// HandleGetAllOrders lists every order. Admin-gated.
func (h *OrderHandler) HandleGetAllOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		return fail(c, "Error fetching orders", err)
	}
	return c.JSON(orders)
}

// HandleUpdateOrderStatus moves an order to a new status. Admin-gated.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required",
		})
	}

	order, err := h.service.UpdateOrderStatus(c.Params("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidTransition):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid order status",
				"error":   err.Error(),
			})
		case services.IsNotFound(err):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		default:
			return fail(c, "Error updating order", err)
		}
	}

	return c.JSON(fiber.Map{
		"message": "Order status updated",
		"order":   order,
	})
}
