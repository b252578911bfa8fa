package persistence

import (
	"context"

	"github.com/davidokon/secretshop/internal/domain/entity"
)

// UserRepository defines essential methods to interact with user data
type UserRepository interface {
	// Create persists a new user created at signup
	//
	// Possible errors:
	// - ErrDuplicateUser: if the email is already registered
	// - ErrDatabaseConnection: if the store is unavailable
	Create(ctx context.Context, user *entity.User) error

	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound
	// - ErrDatabaseConnection
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetByEmail retrieves a user by normalized email
	//
	// Possible errors:
	// - ErrUserNotFound
	// - ErrDatabaseConnection
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// List returns all users, newest first (admin listing)
	List(ctx context.Context) ([]*entity.User, error)

	// Credit atomically increases the wallet balance and returns the updated user
	//
	// Possible errors:
	// - ErrUserNotFound
	// - ErrDatabaseConnection
	Credit(ctx context.Context, userID uint64, amountInCents int64) (*entity.User, error)

	// Debit atomically decreases the wallet balance with a sufficiency guard:
	// the update only applies when balance >= amount, so the balance can never
	// go negative even under concurrent purchases.
	//
	// Possible errors:
	// - ErrUserNotFound
	// - ErrInsufficientFunds: if the guard rejected the debit
	// - ErrDatabaseConnection
	Debit(ctx context.Context, userID uint64, amountInCents int64) (*entity.User, error)
}
