package persistence

import (
	"context"

	"github.com/davidokon/secretshop/internal/domain/entity"
)

// OrderRepository defines essential methods to interact with order data.
// Orders are immutable once created, so there is no update operation.
type OrderRepository interface {
	// Create persists a new order together with its line item snapshots
	Create(ctx context.Context, order *entity.Order) error

	// ListByUser returns a user's orders, newest first
	ListByUser(ctx context.Context, userID uint64) ([]*entity.Order, error)

	// ListAll returns every order, newest first (admin listing)
	ListAll(ctx context.Context) ([]*entity.Order, error)
}
