package model

import (
	"time"
)

// User represents the database model for users
type User struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	Email         string    `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash  string    `gorm:"not null;size:255"`
	WalletBalance int64     `gorm:"not null;default:0"` // Balance in cents
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
