package models_test

import (
	"testing"

	"watchstore/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderStatus(t *testing.T) {
	for _, valid := range []string{"Pending", "Processing", "Shipped", "Delivered", "Cancelled"} {
		status, err := models.ParseOrderStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, models.OrderStatus(valid), status)
	}

	for _, invalid := range []string{"", "pending", "Unknown", "DELIVERED"} {
		_, err := models.ParseOrderStatus(invalid)
		assert.Error(t, err, "expected %q to be rejected", invalid)
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	allowed := []struct {
		from, to models.OrderStatus
	}{
		{models.StatusPending, models.StatusProcessing},
		{models.StatusPending, models.StatusCancelled},
		{models.StatusProcessing, models.StatusShipped},
		{models.StatusProcessing, models.StatusDelivered},
		{models.StatusProcessing, models.StatusCancelled},
		{models.StatusShipped, models.StatusDelivered},
		{models.StatusShipped, models.StatusCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, tc.from.CanTransitionTo(tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	rejected := []struct {
		from, to models.OrderStatus
	}{
		{models.StatusPending, models.StatusDelivered},
		{models.StatusPending, models.StatusShipped},
		{models.StatusPending, models.StatusPending},
		{models.StatusDelivered, models.StatusPending},
		{models.StatusDelivered, models.StatusCancelled},
		{models.StatusCancelled, models.StatusProcessing},
		{models.StatusShipped, models.StatusPending},
	}
	for _, tc := range rejected {
		assert.False(t, tc.from.CanTransitionTo(tc.to), "%s -> %s should be rejected", tc.from, tc.to)
	}
}

func TestWatchApplyDefaults(t *testing.T) {
	watch := models.Watch{
		Image:       "https://example.com/watch.jpg",
		Title:       "Field Watch",
		Description: "Rugged everyday watch",
		Price:       120,
	}
	watch.ApplyDefaults()

	assert.Equal(t, models.CategoryCasual, watch.Category)
	assert.Equal(t, float64(5), watch.Rating)
	assert.Equal(t, 10, watch.Stock)
	assert.Equal(t, "Titan", watch.Brand)
	assert.Equal(t, 0, watch.Reviews)

	// Explicit values survive.
	custom := models.Watch{Category: models.CategorySports, Rating: 4, Stock: 3, Brand: "Garmin"}
	custom.ApplyDefaults()
	assert.Equal(t, models.CategorySports, custom.Category)
	assert.Equal(t, float64(4), custom.Rating)
	assert.Equal(t, 3, custom.Stock)
	assert.Equal(t, "Garmin", custom.Brand)
}
