package repositories

import "watchstore/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByUserID(userID string) ([]models.Order, error)
	Create(order *models.Order) error
	// UpdateStatus overwrites the status of an existing order and returns
	// the updated record. Last write wins; there is no version check.
	UpdateStatus(id string, status models.OrderStatus) (*models.Order, error)
}
