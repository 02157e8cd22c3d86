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

// MongoAdminRepository is a MongoDB implementation of AdminRepository.
type MongoAdminRepository struct {
	col *mongo.Collection
}

// NewMongoAdminRepository creates a new instance of MongoAdminRepository
// backed by the "admins" collection.
func NewMongoAdminRepository(db *mongo.Database) *MongoAdminRepository {
	return &MongoAdminRepository{
		col: db.Collection("admins"),
	}
}

// Create inserts a new admin. Used by seeding only.
func (r *MongoAdminRepository) Create(admin *models.Admin) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	if admin.ID == "" {
		admin.ID = uuid.New().String()
	}
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now()
	}
	if _, err := r.col.InsertOne(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

// GetByEmail retrieves an admin by email.
func (r *MongoAdminRepository) GetByEmail(email string) (*models.Admin, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	var admin models.Admin
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("admin with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get admin by email %s: %w", email, err)
	}
	return &admin, nil
}

// GetByID retrieves an admin by ID.
func (r *MongoAdminRepository) GetByID(id string) (*models.Admin, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	var admin models.Admin
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("admin with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get admin by ID %s: %w", id, err)
	}
	return &admin, nil
}
