package entity

import (
	"time"

	errs "github.com/davidokon/secretshop/internal/domain/error"
	coreport "github.com/davidokon/secretshop/internal/domain/port/core"
)

// TransactionStatus defines possible status values for a funding transaction
type TransactionStatus string

// Transaction statuses. A transaction starts as initialized and moves to
// success or failed exactly once; the wallet credit is gated on that
// transition so the callback and webhook paths cannot double-credit.
const (
	StatusInitialized TransactionStatus = "initialized"
	StatusSuccess     TransactionStatus = "success"
	StatusFailed      TransactionStatus = "failed"
)

// MinFundingAmountInCents is the smallest accepted funding amount (1.00)
const MinFundingAmountInCents int64 = 100

// Transaction represents a wallet funding attempt correlated with the
// payment gateway by its unique reference
type Transaction struct {
	ID            uint64            // Unique identifier for the transaction
	Reference     string            // Globally unique idempotency key
	UserID        *uint64           // Funding user, nil for webhook-created records
	AmountInCents int64             // Funding amount in cents (major unit * 100)
	Status        TransactionStatus // initialized, success or failed
	Metadata      string            // Opaque provider payload, stored as JSON text
	CreatedAt     time.Time         // When funding was initiated
	UpdatedAt     time.Time         // When the transaction was last updated
}

// NewFundingTransaction creates an initialized transaction for a funding request.
// Amount is a 2-dp major-unit string and must be at least 1.00.
func NewFundingTransaction(reference string, userID uint64, amount string, timeProvider coreport.TimeProvider) (*Transaction, error) {
	if reference == "" {
		return nil, errs.ErrInvalidReference
	}

	amountInCents, err := ValidateAndConvertAmount(amount)
	if err != nil {
		return nil, err
	}
	if amountInCents < MinFundingAmountInCents {
		return nil, errs.ErrAmountTooSmall
	}

	now := timeProvider.Now()
	return &Transaction{
		Reference:     reference,
		UserID:        &userID,
		AmountInCents: amountInCents,
		Status:        StatusInitialized,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// IsTerminal reports whether the transaction has reached success or failed
func (t *Transaction) IsTerminal() bool {
	return t.Status == StatusSuccess || t.Status == StatusFailed
}

// GetAmount returns the amount as a string with 2 decimal places
func (t *Transaction) GetAmount() string {
	return AmountInCentsToString(t.AmountInCents)
}

// MinorUnitFactor is the conversion factor between the store's major unit
// and the payment provider's minor unit (kobo for the sampled provider).
const MinorUnitFactor int64 = 100

// CentsToMinorUnit converts an internal cents amount to the gateway's minor unit.
// With a factor of 100 and 2-dp major amounts the two representations coincide,
// but conversion always goes through this helper so the factor is applied
// consistently on initiate and on credit.
func CentsToMinorUnit(amountInCents int64) int64 {
	return amountInCents * MinorUnitFactor / 100
}

// MinorUnitToCents converts a gateway minor-unit amount to internal cents
func MinorUnitToCents(amountMinor int64) int64 {
	return amountMinor * 100 / MinorUnitFactor
}
