package models

import "time"

// Watch categories accepted by the catalog.
const (
	CategoryLuxury     = "luxury"
	CategorySports     = "sports"
	CategoryCasual     = "casual"
	CategorySmartwatch = "smartwatch"
)

// Watch represents a catalog item.
type Watch struct {
	ID          string    `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	Image       string    `json:"image" bson:"image" validate:"required"`
	Title       string    `json:"title" bson:"title" validate:"required"`
	Description string    `json:"description" bson:"description" validate:"required"`
	Price       float64   `json:"price" bson:"price" validate:"gte=0"`
	Category    string    `json:"category" bson:"category" validate:"omitempty,oneof=luxury sports casual smartwatch"`
	Rating      float64   `json:"rating" bson:"rating" validate:"gte=0,lte=5"`
	Reviews     int       `json:"reviews" bson:"reviews" validate:"gte=0"`
	Stock       int       `json:"stock" bson:"stock" validate:"gte=0"`
	Brand       string    `json:"brand" bson:"brand"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// ApplyDefaults fills the catalog defaults for fields the caller left zero.
func (w *Watch) ApplyDefaults() {
	if w.Category == "" {
		w.Category = CategoryCasual
	}
	if w.Rating == 0 {
		w.Rating = 5
	}
	if w.Stock == 0 {
		w.Stock = 10
	}
	if w.Brand == "" {
		w.Brand = "Titan"
	}
}
