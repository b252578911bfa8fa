package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	errs "github.com/davidokon/secretshop/internal/domain/error"
	mockcore "github.com/davidokon/secretshop/mocks/port/core"
)

func TestNewProduct(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should create product with price converted to cents", func(t *testing.T) {
		mockTime := new(mockcore.MockTimeProvider)
		mockTime.On("Now").Return(fixedTime)

		product, err := NewProduct("Steam Key", "A key", "http://img", "US", "steam", "49.99", "XXXX-YYYY", mockTime)

		assert.NoError(t, err)
		assert.Equal(t, "Steam Key", product.Name)
		assert.Equal(t, int64(4999), product.PriceInCents)
		assert.Equal(t, "49.99", product.GetPrice())
		assert.False(t, product.IsSold)
		assert.Nil(t, product.BuyerID)
		assert.Equal(t, fixedTime, product.CreatedAt)
	})

	t.Run("should default to zero price when omitted", func(t *testing.T) {
		mockTime := new(mockcore.MockTimeProvider)
		mockTime.On("Now").Return(fixedTime)

		product, err := NewProduct("Freebie", "", "", "US", "steam", "", "secret", mockTime)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), product.PriceInCents)
	})

	t.Run("should reject blank name", func(t *testing.T) {
		mockTime := new(mockcore.MockTimeProvider)

		_, err := NewProduct("  ", "", "", "US", "steam", "10", "secret", mockTime)

		assert.ErrorIs(t, err, errs.ErrInvalidProductName)
	})

	t.Run("should reject missing secret", func(t *testing.T) {
		mockTime := new(mockcore.MockTimeProvider)

		_, err := NewProduct("Steam Key", "", "", "US", "steam", "10", "  ", mockTime)

		assert.ErrorIs(t, err, errs.ErrMissingSecret)
	})

	t.Run("should reject missing country or platform", func(t *testing.T) {
		mockTime := new(mockcore.MockTimeProvider)

		_, err := NewProduct("Steam Key", "", "", "", "steam", "10", "secret", mockTime)
		assert.ErrorIs(t, err, errs.ErrMissingProductFilter)

		_, err = NewProduct("Steam Key", "", "", "US", "", "10", "secret", mockTime)
		assert.ErrorIs(t, err, errs.ErrMissingProductFilter)
	})

	t.Run("should reject invalid price", func(t *testing.T) {
		mockTime := new(mockcore.MockTimeProvider)

		_, err := NewProduct("Steam Key", "", "", "US", "steam", "-5", "secret", mockTime)

		assert.ErrorIs(t, err, errs.ErrNegativeAmount)
	})
}

func TestProductOwnedBy(t *testing.T) {
	buyerID := uint64(7)

	t.Run("should report ownership for the buyer only", func(t *testing.T) {
		product := &Product{ID: 1, IsSold: true, BuyerID: &buyerID}

		assert.True(t, product.OwnedBy(7))
		assert.False(t, product.OwnedBy(8))
	})

	t.Run("should report no ownership for unsold product", func(t *testing.T) {
		product := &Product{ID: 1}

		assert.False(t, product.OwnedBy(7))
	})
}
