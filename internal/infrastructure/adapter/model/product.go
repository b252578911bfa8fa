package model

import (
	"time"
)

// Product represents the database model for catalog products
type Product struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"not null;size:255"`
	Description  string    `gorm:"type:text"`
	ImageURL     string    `gorm:"size:1024"`
	Country      string    `gorm:"index;size:100"`
	Platform     string    `gorm:"index;size:100"`
	PriceInCents int64     `gorm:"not null"`
	Secret       string    `gorm:"not null;type:text"`
	IsSold       bool      `gorm:"not null;default:false;index"`
	BuyerID      *uint64   `gorm:"index"`
	SoldAt       *time.Time
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}
