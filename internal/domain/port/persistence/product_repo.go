package persistence

import (
	"context"

	"github.com/davidokon/secretshop/internal/domain/entity"
)

// ProductFilter narrows shop listings; empty fields match everything
type ProductFilter struct {
	Country  string
	Platform string
}

// ProductRepository defines essential methods to interact with product data
type ProductRepository interface {
	// Create persists a new product listing
	Create(ctx context.Context, product *entity.Product) error

	// GetByID retrieves a product by ID
	//
	// Possible errors:
	// - ErrProductNotFound
	// - ErrDatabaseConnection
	GetByID(ctx context.Context, id uint64) (*entity.Product, error)

	// List returns products matching the filter, newest first
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)

	// DistinctCountries returns the distinct country values across all products
	DistinctCountries(ctx context.Context) ([]string, error)

	// DistinctPlatforms returns the distinct platform values across all products
	DistinctPlatforms(ctx context.Context) ([]string, error)

	// MarkSold performs the single conditional update that transitions
	// is_sold false->true and assigns the buyer. Exactly one concurrent
	// caller can win; everyone else observes the sold state.
	//
	// Possible errors:
	// - ErrProductNotFound: if no product has the given ID
	// - ErrProductSold: if the product was already sold (transition lost)
	// - ErrDatabaseConnection
	MarkSold(ctx context.Context, productID, buyerID uint64) error

	// Delete removes a product listing (admin operation)
	//
	// Possible errors:
	// - ErrProductNotFound
	// - ErrDatabaseConnection
	Delete(ctx context.Context, id uint64) error
}
