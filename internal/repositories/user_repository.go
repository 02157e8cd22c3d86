package repositories

import "watchstore/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}

// AdminRepository defines the interface for admin data access. Admins are a
// separate collection from users; they are seeded out-of-band, so there is
// no registration path through this interface beyond Create for seeding.
type AdminRepository interface {
	Create(admin *models.Admin) error
	GetByEmail(email string) (*models.Admin, error)
	GetByID(id string) (*models.Admin, error)
}
