package repositories

import (
	"watchstore/internal/models"
)

// WatchRepository defines the interface for catalog data access.
type WatchRepository interface {
	GetAll() ([]models.Watch, error)
	GetByID(id string) (*models.Watch, error)
	Create(watch *models.Watch) error
	Update(watch *models.Watch) error
	Delete(id string) error
}
