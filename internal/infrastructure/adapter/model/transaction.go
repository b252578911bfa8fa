package model

import (
	"time"
)

// Transaction represents the database model for wallet funding transactions
type Transaction struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	Reference     string    `gorm:"uniqueIndex;not null;size:255"`
	UserID        *uint64   `gorm:"index"`
	AmountInCents int64     `gorm:"not null"`
	Status        string    `gorm:"not null;size:50;index"`
	Metadata      string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
