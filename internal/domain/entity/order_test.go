package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	mockcore "github.com/davidokon/secretshop/mocks/port/core"
)

func TestNewOrder(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should snapshot the product into a single line item", func(t *testing.T) {
		mockTime := new(mockcore.MockTimeProvider)
		mockTime.On("Now").Return(fixedTime)

		product := &Product{
			ID:           3,
			Name:         "Steam Key",
			PriceInCents: 2999,
			Secret:       "XXXX-YYYY",
		}

		order := NewOrder(7, product, mockTime)

		assert.Equal(t, uint64(7), order.UserID)
		assert.Equal(t, int64(2999), order.TotalInCents)
		assert.Equal(t, "29.99", order.GetTotal())
		assert.Equal(t, OrderCompleted, order.Status)
		assert.Equal(t, fixedTime, order.CreatedAt)

		assert.Len(t, order.Items, 1)
		item := order.Items[0]
		assert.Equal(t, "Steam Key", item.ProductName)
		assert.Equal(t, 1, item.Quantity)
		assert.Equal(t, int64(2999), item.PriceInCents)
		assert.Equal(t, "XXXX-YYYY", item.Secret)
	})
}
