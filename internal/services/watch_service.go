package services

import (
	"watchstore/internal/models"
	"watchstore/internal/repositories"
)

// WatchService handles business logic for the catalog.
type WatchService struct {
	repo repositories.WatchRepository
}

// NewWatchService creates a new WatchService.
func NewWatchService(repo repositories.WatchRepository) *WatchService {
	return &WatchService{
		repo: repo,
	}
}

// GetAllWatches retrieves the full catalog. No pagination; filtering and
// sorting happen client-side on the full result set.
func (s *WatchService) GetAllWatches() ([]models.Watch, error) {
	return s.repo.GetAll()
}

// GetWatchByID retrieves a single watch by its ID.
func (s *WatchService) GetWatchByID(id string) (*models.Watch, error) {
	return s.repo.GetByID(id)
}

// CreateWatch creates a new catalog entry, filling category/rating/stock/brand
// defaults for fields the caller left unset.
func (s *WatchService) CreateWatch(watch *models.Watch) error {
	watch.ApplyDefaults()
	return s.repo.Create(watch)
}

// UpdateWatch overwrites the mutable fields of an existing watch. Fields
// outside this set (category, rating, reviews, stock, brand) are preserved.
func (s *WatchService) UpdateWatch(id, image, title, description string, price float64) (*models.Watch, error) {
	watch, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	watch.Image = image
	watch.Title = title
	watch.Description = description
	watch.Price = price

	if err := s.repo.Update(watch); err != nil {
		return nil, err
	}
	return watch, nil
}

// DeleteWatch deletes a watch by its ID.
func (s *WatchService) DeleteWatch(id string) error {
	return s.repo.Delete(id)
}
