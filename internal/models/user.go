package models

import "gorm.io/gorm"

// User represents an account of the store.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(24)" validate:"required,min=3,max=24"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `json:"-" gorm:"uniqueIndex;type:varchar(255)" validate:"required"` // bcrypt hash, never serialized
	Role       string `json:"role" gorm:"type:varchar(16);default:user" validate:"omitempty,oneof=user admin"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
