package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/davidokon/secretshop/internal/domain/entity"
	errs "github.com/davidokon/secretshop/internal/domain/error"
	coreport "github.com/davidokon/secretshop/internal/domain/port/core"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// TransactionRepository implements the TransactionRepository port using GORM
type TransactionRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *TransactionRepository) modelToEntity(m *model.Transaction) *entity.Transaction {
	return &entity.Transaction{
		ID:            m.ID,
		Reference:     m.Reference,
		UserID:        m.UserID,
		AmountInCents: m.AmountInCents,
		Status:        entity.TransactionStatus(m.Status),
		Metadata:      m.Metadata,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (r *TransactionRepository) handleDatabaseError(operation string, err error, reference string) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"reference": reference,
		"error":     err.Error(),
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrTransactionNotFound
	}
	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrDuplicateReference
	}
	if r.errorClassifier.IsConnectionError(err) {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	return fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
}

// Create persists a new funding transaction. The unique index on reference
// turns concurrent inserts for the same reference into ErrDuplicateReference.
func (r *TransactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	txnModel := model.Transaction{
		Reference:     txn.Reference,
		UserID:        txn.UserID,
		AmountInCents: txn.AmountInCents,
		Status:        string(txn.Status),
		Metadata:      txn.Metadata,
		CreatedAt:     txn.CreatedAt,
		UpdatedAt:     txn.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&txnModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating transaction", result.Error, txn.Reference)
	}

	txn.ID = txnModel.ID

	r.logger.Info("Transaction created", map[string]any{
		"reference": txn.Reference,
		"amount":    txn.GetAmount(),
	})
	return nil
}

// GetByReference retrieves a transaction by its unique reference
func (r *TransactionRepository) GetByReference(ctx context.Context, reference string) (*entity.Transaction, error) {
	var txnModel model.Transaction
	result := r.db.WithContext(ctx).Where("reference = ?", reference).First(&txnModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTransactionNotFound
		}
		return nil, r.handleDatabaseError("getting transaction", result.Error, reference)
	}
	return r.modelToEntity(&txnModel), nil
}

// MarkSucceeded transitions the transaction to success. The status guard
// makes the transition fire at most once per reference: the returned bool
// is true only for the caller whose update matched a row, and that caller
// is the one allowed to credit the wallet.
func (r *TransactionRepository) MarkSucceeded(ctx context.Context, reference, metadata string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("reference = ? AND status <> ?", reference, string(entity.StatusSuccess)).
		Updates(map[string]any{
			"status":     string(entity.StatusSuccess),
			"metadata":   metadata,
			"updated_at": r.timeProvider.Now(),
		})
	if result.Error != nil {
		return false, r.handleDatabaseError("marking transaction succeeded", result.Error, reference)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Transaction{}).
			Where("reference = ?", reference).Count(&count).Error; err != nil {
			return false, r.handleDatabaseError("checking transaction", err, reference)
		}
		if count == 0 {
			return false, errs.ErrTransactionNotFound
		}
		return false, nil
	}

	r.logger.Info("Transaction marked succeeded", map[string]any{
		"reference": reference,
	})
	return true, nil
}

// MarkFailed records a failed payment. Already-succeeded transactions are
// left untouched; failure never overwrites success.
func (r *TransactionRepository) MarkFailed(ctx context.Context, reference, metadata string) error {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("reference = ? AND status <> ?", reference, string(entity.StatusSuccess)).
		Updates(map[string]any{
			"status":     string(entity.StatusFailed),
			"metadata":   metadata,
			"updated_at": r.timeProvider.Now(),
		})
	if result.Error != nil {
		return r.handleDatabaseError("marking transaction failed", result.Error, reference)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Transaction{}).
			Where("reference = ?", reference).Count(&count).Error; err != nil {
			return r.handleDatabaseError("checking transaction", err, reference)
		}
		if count == 0 {
			return errs.ErrTransactionNotFound
		}
	}
	return nil
}
