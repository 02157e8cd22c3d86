package services_test

import (
	"fmt"
	"testing"

	"watchstore/internal/models"
	"watchstore/internal/repositories"
	"watchstore/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockWatchRepo is a mock implementation of repositories.WatchRepository
type MockWatchRepo struct {
	mock.Mock
}

func (m *MockWatchRepo) GetAll() ([]models.Watch, error) {
	args := m.Called()
	return args.Get(0).([]models.Watch), args.Error(1)
}

func (m *MockWatchRepo) GetByID(id string) (*models.Watch, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Watch), args.Error(1)
}

func (m *MockWatchRepo) Create(watch *models.Watch) error {
	args := m.Called(watch)
	return args.Error(0)
}

func (m *MockWatchRepo) Update(watch *models.Watch) error {
	args := m.Called(watch)
	return args.Error(0)
}

func (m *MockWatchRepo) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestWatchService_GetAllWatches(t *testing.T) {
	mockRepo := new(MockWatchRepo)
	service := services.NewWatchService(mockRepo)

	expected := []models.Watch{
		{ID: "1", Title: "Omega Seamaster", Price: 539500},
		{ID: "2", Title: "Garmin Fenix 7X", Price: 66317},
	}

	mockRepo.On("GetAll").Return(expected, nil).Once()

	watches, err := service.GetAllWatches()

	assert.NoError(t, err)
	assert.Len(t, watches, 2)
	assert.Equal(t, expected, watches)
	mockRepo.AssertExpectations(t)
}

func TestWatchService_GetWatchByID(t *testing.T) {
	mockRepo := new(MockWatchRepo)
	service := services.NewWatchService(mockRepo)

	expected := &models.Watch{ID: "1", Title: "Omega Seamaster", Price: 539500}

	mockRepo.On("GetByID", "1").Return(expected, nil).Once()
	watch, err := service.GetWatchByID("1")
	assert.NoError(t, err)
	assert.Equal(t, expected, watch)
	mockRepo.AssertExpectations(t)

	mockRepo.On("GetByID", "99").Return(nil, fmt.Errorf("watch with ID 99: %w", repositories.ErrNotFound)).Once()
	watch, err = service.GetWatchByID("99")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Nil(t, watch)
	mockRepo.AssertExpectations(t)
}

func TestWatchService_CreateWatch(t *testing.T) {
	mockRepo := new(MockWatchRepo)
	service := services.NewWatchService(mockRepo)

	newWatch := &models.Watch{
		Image:       "https://example.com/w.jpg",
		Title:       "Casio Duro",
		Description: "Affordable dive watch",
		Price:       60,
	}

	mockRepo.On("Create", newWatch).Return(nil).Once()
	err := service.CreateWatch(newWatch)
	assert.NoError(t, err)

	// Catalog defaults are filled before the repository sees the record.
	assert.Equal(t, models.CategoryCasual, newWatch.Category)
	assert.Equal(t, float64(5), newWatch.Rating)
	assert.Equal(t, 10, newWatch.Stock)
	assert.Equal(t, "Titan", newWatch.Brand)
	mockRepo.AssertExpectations(t)

	mockRepo.On("Create", mock.AnythingOfType("*models.Watch")).Return(fmt.Errorf("database error")).Once()
	err = service.CreateWatch(&models.Watch{Title: "Broken"})
	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
}

func TestWatchService_UpdateWatch(t *testing.T) {
	mockRepo := new(MockWatchRepo)
	service := services.NewWatchService(mockRepo)

	existing := &models.Watch{
		ID:          "1",
		Image:       "https://example.com/old.jpg",
		Title:       "Old Title",
		Description: "Old description",
		Price:       100,
		Category:    models.CategoryLuxury,
		Brand:       "Omega",
		Stock:       7,
		Reviews:     95,
	}

	mockRepo.On("GetByID", "1").Return(existing, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Watch")).Return(nil).Once()

	updated, err := service.UpdateWatch("1", "https://example.com/new.jpg", "New Title", "New description", 150)
	assert.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, float64(150), updated.Price)
	// Fields outside the update set are preserved.
	assert.Equal(t, models.CategoryLuxury, updated.Category)
	assert.Equal(t, "Omega", updated.Brand)
	assert.Equal(t, 7, updated.Stock)
	mockRepo.AssertExpectations(t)

	mockRepo.On("GetByID", "99").Return(nil, fmt.Errorf("watch with ID 99: %w", repositories.ErrNotFound)).Once()
	_, err = service.UpdateWatch("99", "i", "t", "d", 1)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestWatchService_DeleteWatch(t *testing.T) {
	mockRepo := new(MockWatchRepo)
	service := services.NewWatchService(mockRepo)

	mockRepo.On("Delete", "1").Return(nil).Once()
	assert.NoError(t, service.DeleteWatch("1"))
	mockRepo.AssertExpectations(t)

	mockRepo.On("Delete", "99").Return(fmt.Errorf("watch with ID 99: %w", repositories.ErrNotFound)).Once()
	assert.ErrorIs(t, service.DeleteWatch("99"), repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
