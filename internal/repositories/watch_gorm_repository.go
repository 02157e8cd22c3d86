package repositories

import (
	"fmt"
	"time"

	"watchstore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMWatchRepository is a GORM implementation of WatchRepository.
type GORMWatchRepository struct {
	db *gorm.DB
}

// NewGORMWatchRepository creates a new instance of GORMWatchRepository.
func NewGORMWatchRepository(db *gorm.DB) *GORMWatchRepository {
	return &GORMWatchRepository{
		db: db,
	}
}

// GetAll retrieves all watches from the database.
func (r *GORMWatchRepository) GetAll() ([]models.Watch, error) {
	watches := make([]models.Watch, 0)
	if err := r.db.Find(&watches).Error; err != nil {
		return nil, fmt.Errorf("failed to get all watches: %w", err)
	}
	return watches, nil
}

// GetByID retrieves a single watch by its ID from the database.
func (r *GORMWatchRepository) GetByID(id string) (*models.Watch, error) {
	var watch models.Watch
	if err := r.db.First(&watch, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("watch with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get watch by ID %s: %w", id, err)
	}
	return &watch, nil
}

// Create creates a new watch in the database.
func (r *GORMWatchRepository) Create(watch *models.Watch) error {
	if watch.ID == "" {
		watch.ID = uuid.New().String()
	}
	if watch.CreatedAt.IsZero() {
		watch.CreatedAt = time.Now()
	}
	if err := r.db.Create(watch).Error; err != nil {
		return fmt.Errorf("failed to create watch: %w", err)
	}
	return nil
}

// Update updates an existing watch in the database.
func (r *GORMWatchRepository) Update(watch *models.Watch) error {
	res := r.db.Save(watch) // Save overwrites all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update watch: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// GORM's Save does not return ErrRecordNotFound for a missing row,
		// so we check RowsAffected.
		return fmt.Errorf("watch with ID %s: %w", watch.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a watch by its ID from the database.
func (r *GORMWatchRepository) Delete(id string) error {
	res := r.db.Delete(&models.Watch{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete watch: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("watch with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
