package persistence

import (
	"context"

	"github.com/davidokon/secretshop/internal/domain/entity"
)

// TransactionRepository defines essential methods to interact with funding
// transaction data. The reference column carries a unique index, making it
// the idempotency key for the whole funding flow.
type TransactionRepository interface {
	// Create saves a new funding transaction
	//
	// Possible errors:
	// - ErrDuplicateReference: if a transaction with the reference exists
	// - ErrDatabaseConnection
	Create(ctx context.Context, transaction *entity.Transaction) error

	// GetByReference retrieves a transaction by its unique reference
	//
	// Possible errors:
	// - ErrTransactionNotFound
	// - ErrDatabaseConnection
	GetByReference(ctx context.Context, reference string) (*entity.Transaction, error)

	// MarkSucceeded performs the single conditional update that moves a
	// transaction to success, storing the provider metadata. It reports
	// whether THIS call performed the transition: false means the
	// transaction was already successful and the caller must not credit
	// the wallet again.
	//
	// Possible errors:
	// - ErrTransactionNotFound: if no transaction has the reference
	// - ErrDatabaseConnection
	MarkSucceeded(ctx context.Context, reference, metadata string) (bool, error)

	// MarkFailed moves a non-successful transaction to failed.
	// A transaction already marked success is left untouched.
	MarkFailed(ctx context.Context, reference, metadata string) error
}
