package repositories

import (
	"fmt"
	"sync"
	"time"

	"watchstore/internal/models"

	"github.com/google/uuid"
)

// MockWatchRepository is an in-memory implementation of WatchRepository.
type MockWatchRepository struct {
	watches map[string]models.Watch
	mu      sync.RWMutex
}

// NewMockWatchRepository creates a new instance of MockWatchRepository.
func NewMockWatchRepository() *MockWatchRepository {
	return &MockWatchRepository{
		watches: make(map[string]models.Watch),
	}
}

// GetAll returns all watches.
func (r *MockWatchRepository) GetAll() ([]models.Watch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	watchList := make([]models.Watch, 0, len(r.watches))
	for _, w := range r.watches {
		watchList = append(watchList, w)
	}
	return watchList, nil
}

// GetByID returns a watch by its ID.
func (r *MockWatchRepository) GetByID(id string) (*models.Watch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	watch, ok := r.watches[id]
	if !ok {
		return nil, fmt.Errorf("watch with ID %s: %w", id, ErrNotFound)
	}
	return &watch, nil
}

// Create adds a new watch.
func (r *MockWatchRepository) Create(watch *models.Watch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if watch.ID == "" {
		watch.ID = uuid.New().String()
	}
	if watch.CreatedAt.IsZero() {
		watch.CreatedAt = time.Now()
	}
	r.watches[watch.ID] = *watch
	return nil
}

// Update modifies an existing watch.
func (r *MockWatchRepository) Update(watch *models.Watch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.watches[watch.ID]
	if !ok {
		return fmt.Errorf("watch with ID %s: %w", watch.ID, ErrNotFound)
	}
	r.watches[watch.ID] = *watch
	return nil
}

// Delete removes a watch by its ID.
func (r *MockWatchRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.watches[id]
	if !ok {
		return fmt.Errorf("watch with ID %s: %w", id, ErrNotFound)
	}
	delete(r.watches, id)
	return nil
}
