package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"watchstore/internal/models"

	"github.com/google/uuid"
)

const mongoOpTimeout = 5 * time.Second

// MongoWatchRepository is a MongoDB implementation of WatchRepository.
type MongoWatchRepository struct {
	col *mongo.Collection
}

// NewMongoWatchRepository creates a new instance of MongoWatchRepository
// backed by the "watches" collection.
func NewMongoWatchRepository(db *mongo.Database) *MongoWatchRepository {
	return &MongoWatchRepository{
		col: db.Collection("watches"),
	}
}

// GetAll retrieves all watches from the collection.
func (r *MongoWatchRepository) GetAll() ([]models.Watch, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to get all watches: %w", err)
	}
	watches := make([]models.Watch, 0)
	if err := cursor.All(ctx, &watches); err != nil {
		return nil, fmt.Errorf("failed to decode watches: %w", err)
	}
	return watches, nil
}

// GetByID retrieves a single watch by its ID.
func (r *MongoWatchRepository) GetByID(id string) (*models.Watch, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	var watch models.Watch
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&watch)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("watch with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get watch by ID %s: %w", id, err)
	}
	return &watch, nil
}

// Create inserts a new watch into the collection.
func (r *MongoWatchRepository) Create(watch *models.Watch) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	if watch.ID == "" {
		watch.ID = uuid.New().String()
	}
	if watch.CreatedAt.IsZero() {
		watch.CreatedAt = time.Now()
	}
	if _, err := r.col.InsertOne(ctx, watch); err != nil {
		return fmt.Errorf("failed to create watch: %w", err)
	}
	return nil
}

// Update overwrites an existing watch document.
func (r *MongoWatchRepository) Update(watch *models.Watch) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": watch.ID}, watch)
	if err != nil {
		return fmt.Errorf("failed to update watch: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("watch with ID %s: %w", watch.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a watch by its ID.
func (r *MongoWatchRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete watch: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("watch with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
