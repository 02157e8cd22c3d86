package handlers

import (
	"encoding/json"

	"watchstore/internal/models"
	"watchstore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// WatchHandler handles HTTP requests for the catalog.
type WatchHandler struct {
	service  *services.WatchService
	validate *validator.Validate
}

// NewWatchHandler creates a new WatchHandler.
func NewWatchHandler(service *services.WatchService) *WatchHandler {
	return &WatchHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app. Reads are
// public; mutations sit behind the admin gate.
func (h *WatchHandler) RegisterRoutes(router fiber.Router, adminGate fiber.Handler) {
	watchRoutes := router.Group("/watches")
	watchRoutes.Get("/", h.HandleGetWatches)
	watchRoutes.Get("/:id", h.HandleGetWatchByID)
	watchRoutes.Post("/", adminGate, h.HandleCreateWatch)
	watchRoutes.Put("/:id", adminGate, h.HandleUpdateWatch)
	watchRoutes.Delete("/:id", adminGate, h.HandleDeleteWatch)
}

// WatchRequest represents the mutable catalog fields accepted from admins.
// Price arrives as a json.Number so that both numeric and string bodies are
// coerced at the boundary.
type WatchRequest struct {
	Image       string      `json:"image" validate:"required"`
	Title       string      `json:"title" validate:"required"`
	Description string      `json:"description" validate:"required"`
	Price       json.Number `json:"price" validate:"required"`
}

// price coerces the request price into a non-negative float.
func (r *WatchRequest) price() (float64, bool) {
	price, err := r.Price.Float64()
	if err != nil || price < 0 {
		return 0, false
	}
	return price, true
}

// HandleGetWatches retrieves the full catalog.
func (h *WatchHandler) HandleGetWatches(c *fiber.Ctx) error {
	watches, err := h.service.GetAllWatches()
	if err != nil {
		return fail(c, "Error fetching watches", err)
	}
	return c.JSON(watches)
}

// HandleGetWatchByID retrieves a single watch by its ID.
func (h *WatchHandler) HandleGetWatchByID(c *fiber.Ctx) error {
	watch, err := h.service.GetWatchByID(c.Params("id"))
	if err != nil {
		if services.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Watch not found",
			})
		}
		return fail(c, "Error fetching watch", err)
	}
	return c.JSON(watch)
}

// HandleCreateWatch creates a new catalog entry.
func (h *WatchHandler) HandleCreateWatch(c *fiber.Ctx) error {
	var req WatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "All fields are required",
			"errors":  validationMessages(err),
		})
	}

	price, ok := req.price()
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Price must be a non-negative number",
		})
	}

	watch := &models.Watch{
		Image:       req.Image,
		Title:       req.Title,
		Description: req.Description,
		Price:       price,
	}

	if err := h.service.CreateWatch(watch); err != nil {
		return fail(c, "Error creating watch", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Watch created successfully",
		"watch":   watch,
	})
}

// HandleUpdateWatch overwrites the mutable fields of an existing watch.
func (h *WatchHandler) HandleUpdateWatch(c *fiber.Ctx) error {
	var req WatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "All fields are required",
			"errors":  validationMessages(err),
		})
	}

	price, ok := req.price()
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Price must be a non-negative number",
		})
	}

	watch, err := h.service.UpdateWatch(c.Params("id"), req.Image, req.Title, req.Description, price)
	if err != nil {
		if services.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Watch not found",
			})
		}
		return fail(c, "Error updating watch", err)
	}

	return c.JSON(fiber.Map{
		"message": "Watch updated successfully",
		"watch":   watch,
	})
}

// HandleDeleteWatch deletes a watch by its ID.
func (h *WatchHandler) HandleDeleteWatch(c *fiber.Ctx) error {
	if err := h.service.DeleteWatch(c.Params("id")); err != nil {
		if services.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Watch not found",
			})
		}
		return fail(c, "Error deleting watch", err)
	}

	return c.JSON(fiber.Map{
		"message": "Watch deleted successfully",
	})
}
