package repositories

import (
	"fmt"
	"time"

	"watchstore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMAdminRepository is a GORM implementation of AdminRepository.
type GORMAdminRepository struct {
	db *gorm.DB
}

// NewGORMAdminRepository creates a new instance of GORMAdminRepository.
func NewGORMAdminRepository(db *gorm.DB) *GORMAdminRepository {
	return &GORMAdminRepository{
		db: db,
	}
}

// Create creates a new admin in the database. Used by seeding only.
func (r *GORMAdminRepository) Create(admin *models.Admin) error {
	if admin.ID == "" {
		admin.ID = uuid.New().String()
	}
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now()
	}
	if err := r.db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

// GetByEmail retrieves an admin by their email from the database.
func (r *GORMAdminRepository) GetByEmail(email string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.First(&admin, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("admin with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get admin by email %s: %w", email, err)
	}
	return &admin, nil
}

// GetByID retrieves an admin by their ID from the database.
func (r *GORMAdminRepository) GetByID(id string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.First(&admin, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("admin with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get admin by ID %s: %w", id, err)
	}
	return &admin, nil
}
