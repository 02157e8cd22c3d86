package models

import "time"

// User represents a registered storefront customer.
type User struct {
	ID        string    `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" bson:"name" validate:"required"`
	Email     string    `json:"email" bson:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string    `json:"-" bson:"password" gorm:"type:varchar(255)"` // bcrypt hash, never serialized to clients
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Summary is the user projection attached to admin order listings.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// UserSummary carries the public subset of a user record.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
