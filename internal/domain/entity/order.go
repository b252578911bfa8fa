package entity

import (
	"time"

	coreport "github.com/davidokon/secretshop/internal/domain/port/core"
)

// OrderStatus defines possible status values for an order
type OrderStatus string

// Order statuses
const (
	OrderCompleted OrderStatus = "completed"
)

// OrderItem is an immutable snapshot of a purchased product.
// The secret payload is copied here so the buyer keeps access even if
// the product listing is later deleted.
type OrderItem struct {
	ID           uint64 // Unique identifier for the line item
	OrderID      uint64 // Owning order
	ProductName  string // Product name at time of purchase
	Quantity     int    // Always 1 for secret-info products
	PriceInCents int64  // Price at time of purchase
	Secret       string // Secret payload snapshot, visible to the buyer
}

// Order records a completed purchase; immutable after creation
type Order struct {
	ID           uint64      // Unique identifier for the order
	UserID       uint64      // Buyer
	Items        []OrderItem // Line item snapshots
	TotalInCents int64       // Order total in cents
	Status       OrderStatus // Always completed in the current flow
	CreatedAt    time.Time   // When the order was created
}

// NewOrder builds a single-item order snapshotting the given product
func NewOrder(userID uint64, product *Product, timeProvider coreport.TimeProvider) *Order {
	return &Order{
		UserID: userID,
		Items: []OrderItem{
			{
				ProductName:  product.Name,
				Quantity:     1,
				PriceInCents: product.PriceInCents,
				Secret:       product.Secret,
			},
		},
		TotalInCents: product.PriceInCents,
		Status:       OrderCompleted,
		CreatedAt:    timeProvider.Now(),
	}
}

// GetTotal returns the order total as a string with 2 decimal places
func (o *Order) GetTotal() string {
	return AmountInCentsToString(o.TotalInCents)
}
