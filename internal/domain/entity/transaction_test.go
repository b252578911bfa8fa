package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	errs "github.com/davidokon/secretshop/internal/domain/error"
	mockcore "github.com/davidokon/secretshop/mocks/port/core"
)

func TestNewFundingTransaction(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should create initialized transaction", func(t *testing.T) {
		mockTime := new(mockcore.MockTimeProvider)
		mockTime.On("Now").Return(fixedTime)

		tx, err := NewFundingTransaction("fund_123", 7, "50.00", mockTime)

		assert.NoError(t, err)
		assert.Equal(t, "fund_123", tx.Reference)
		assert.Equal(t, uint64(7), *tx.UserID)
		assert.Equal(t, int64(5000), tx.AmountInCents)
		assert.Equal(t, StatusInitialized, tx.Status)
		assert.False(t, tx.IsTerminal())
		assert.Equal(t, fixedTime, tx.CreatedAt)
	})

	t.Run("should reject empty reference", func(t *testing.T) {
		mockTime := new(mockcore.MockTimeProvider)

		_, err := NewFundingTransaction("", 7, "50.00", mockTime)

		assert.ErrorIs(t, err, errs.ErrInvalidReference)
	})

	t.Run("should reject amount below minimum", func(t *testing.T) {
		mockTime := new(mockcore.MockTimeProvider)

		_, err := NewFundingTransaction("fund_123", 7, "0.99", mockTime)

		assert.ErrorIs(t, err, errs.ErrAmountTooSmall)
	})

	t.Run("should reject invalid amount", func(t *testing.T) {
		mockTime := new(mockcore.MockTimeProvider)

		_, err := NewFundingTransaction("fund_123", 7, "-50", mockTime)

		assert.ErrorIs(t, err, errs.ErrNegativeAmount)
	})
}

func TestTransactionIsTerminal(t *testing.T) {
	assert.False(t, (&Transaction{Status: StatusInitialized}).IsTerminal())
	assert.True(t, (&Transaction{Status: StatusSuccess}).IsTerminal())
	assert.True(t, (&Transaction{Status: StatusFailed}).IsTerminal())
}

func TestMinorUnitConversion(t *testing.T) {
	assert.Equal(t, int64(5000), CentsToMinorUnit(5000))
	assert.Equal(t, int64(5000), MinorUnitToCents(5000))
	assert.Equal(t, int64(1015), MinorUnitToCents(CentsToMinorUnit(1015)))
}
