package model

import (
	"time"
)

// Order represents the database model for completed purchases
type Order struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	UserID       uint64    `gorm:"not null;index"`
	TotalInCents int64     `gorm:"not null"`
	Status       string    `gorm:"not null;size:50"`
	CreatedAt    time.Time `gorm:"not null"`

	Items []OrderItem `gorm:"foreignKey:OrderID;references:ID"`
	User  User        `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Order
func (Order) TableName() string {
	return "orders"
}

// OrderItem is the immutable snapshot of a purchased product. It carries
// its own copy of name, price and secret so later catalog edits never
// change what a shopper bought.
type OrderItem struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	OrderID      uint64 `gorm:"not null;index"`
	ProductName  string `gorm:"not null;size:255"`
	Quantity     int    `gorm:"not null;default:1"`
	PriceInCents int64  `gorm:"not null"`
	Secret       string `gorm:"not null;type:text"`
}

// TableName specifies the table name for OrderItem
func (OrderItem) TableName() string {
	return "order_items"
}
