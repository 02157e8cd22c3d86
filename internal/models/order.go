package models

import (
	"fmt"
	"time"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// statusTransitions enumerates the allowed moves between order states.
// Delivered and Cancelled are terminal.
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusDelivered, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
}

// ParseOrderStatus converts a raw string into an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("unknown order status: %q", s)
}

// CanTransitionTo reports whether moving from the current status to next is allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ShippingAddress is the delivery destination captured at checkout.
type ShippingAddress struct {
	AddressLine1 string `json:"addressLine1" bson:"addressLine1" validate:"required"`
	AddressLine2 string `json:"addressLine2" bson:"addressLine2"`
	City         string `json:"city" bson:"city" validate:"required"`
	State        string `json:"state" bson:"state"`
	Zip          string `json:"zip" bson:"zip"`
	Country      string `json:"country" bson:"country"`
}

// OrderItem is a line item snapshotting the catalog title and price at
// creation time, so the order survives later catalog edits. WatchDetail is
// filled by a read-time join against the current catalog and never stored.
type OrderItem struct {
	WatchID     string  `json:"watch" bson:"watch"`
	Title       string  `json:"title" bson:"title"`
	Price       float64 `json:"price" bson:"price"`
	Quantity    int     `json:"quantity" bson:"quantity"`
	WatchDetail *Watch  `json:"watchDetail,omitempty" bson:"-" gorm:"-"`
}

// Order represents a placed customer order.
type Order struct {
	ID              string          `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string          `json:"user" bson:"user" gorm:"index;type:varchar(36)"`
	UserEmail       string          `json:"userEmail" bson:"userEmail"`
	FullName        string          `json:"fullName" bson:"fullName"`
	Phone           string          `json:"phone" bson:"phone"`
	ShippingAddress ShippingAddress `json:"shippingAddress" bson:"shippingAddress" gorm:"serializer:json"`
	Items           []OrderItem     `json:"items" bson:"items" gorm:"serializer:json"`
	Subtotal        float64         `json:"subtotal" bson:"subtotal"`
	Shipping        float64         `json:"shipping" bson:"shipping"`
	Total           float64         `json:"total" bson:"total"`
	Status          OrderStatus     `json:"status" bson:"status" gorm:"type:varchar(20)"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt"`

	// UserInfo is a read-time join of the owning user, present only on
	// admin listings.
	UserInfo *UserSummary `json:"userInfo,omitempty" bson:"-" gorm:"-"`
}
