package repositories

import (
	"fmt"
	"sync"
	"time"

	"watchstore/internal/models"

	"github.com/google/uuid"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.users[user.ID] = *user
	return nil
}

// GetByEmail returns a user by their email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
}

// GetByID returns a user by their ID.
func (r *MockUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
	}
	return &user, nil
}

// MockAdminRepository is an in-memory implementation of AdminRepository.
type MockAdminRepository struct {
	admins map[string]models.Admin
	mu     sync.RWMutex
}

// NewMockAdminRepository creates a new instance of MockAdminRepository.
func NewMockAdminRepository() *MockAdminRepository {
	return &MockAdminRepository{
		admins: make(map[string]models.Admin),
	}
}

// Create adds a new admin.
func (r *MockAdminRepository) Create(admin *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if admin.ID == "" {
		admin.ID = uuid.New().String()
	}
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now()
	}
	r.admins[admin.ID] = *admin
	return nil
}

// GetByEmail returns an admin by their email.
func (r *MockAdminRepository) GetByEmail(email string) (*models.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.admins {
		if a.Email == email {
			admin := a
			return &admin, nil
		}
	}
	return nil, fmt.Errorf("admin with email %s: %w", email, ErrNotFound)
}

// GetByID returns an admin by their ID.
func (r *MockAdminRepository) GetByID(id string) (*models.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	admin, ok := r.admins[id]
	if !ok {
		return nil, fmt.Errorf("admin with ID %s: %w", id, ErrNotFound)
	}
	return &admin, nil
}
