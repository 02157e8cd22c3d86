package models

import "time"

// Admin represents a store administrator. Admins live in their own
// collection; the record being found there is what confers the admin role.
type Admin struct {
	ID        string    `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	Email     string    `json:"email" bson:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string    `json:"-" bson:"password" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
