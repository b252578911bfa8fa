package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	errs "github.com/davidokon/secretshop/internal/domain/error"
	mockcore "github.com/davidokon/secretshop/mocks/port/core"
)

func TestNewUser(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should create user with hashed password and zero balance", func(t *testing.T) {
		mockTime := new(mockcore.MockTimeProvider)
		mockTime.On("Now").Return(fixedTime)

		user, err := NewUser("Shopper@Example.com ", "hunter22", mockTime)

		assert.NoError(t, err)
		assert.Equal(t, "shopper@example.com", user.Email)
		assert.NotEqual(t, "hunter22", user.PasswordHash)
		assert.Equal(t, "0.00", user.GetWalletBalance())
		assert.Equal(t, fixedTime, user.CreatedAt)
		assert.True(t, user.CheckPassword("hunter22"))
		assert.False(t, user.CheckPassword("wrong"))
	})

	t.Run("should reject invalid email", func(t *testing.T) {
		mockTime := new(mockcore.MockTimeProvider)

		for _, email := range []string{"", "no-at-sign", "@nodomain", "user@", "user@nodot", "two @spaces.com"} {
			_, err := NewUser(email, "hunter22", mockTime)
			assert.ErrorIs(t, err, errs.ErrInvalidEmail, "email: %q", email)
		}
	})

	t.Run("should reject short password", func(t *testing.T) {
		mockTime := new(mockcore.MockTimeProvider)

		_, err := NewUser("shopper@example.com", "12345", mockTime)

		assert.ErrorIs(t, err, errs.ErrWeakPassword)
	})
}

func TestUserWalletBalance(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should format balance with two decimal places", func(t *testing.T) {
		mockTime := new(mockcore.MockTimeProvider)
		mockTime.On("Now").Return(fixedTime)

		user, err := NewUser("shopper@example.com", "hunter22", mockTime)
		assert.NoError(t, err)

		user.SetWalletBalance(12345, mockTime)

		assert.Equal(t, int64(12345), user.WalletBalance())
		assert.Equal(t, "123.45", user.GetWalletBalance())
	})

	t.Run("should check affordability against price", func(t *testing.T) {
		mockTime := new(mockcore.MockTimeProvider)
		mockTime.On("Now").Return(fixedTime)

		user, err := NewUser("shopper@example.com", "hunter22", mockTime)
		assert.NoError(t, err)
		user.SetWalletBalance(5000, mockTime)

		assert.True(t, user.CanAfford(3000))
		assert.True(t, user.CanAfford(5000))
		assert.False(t, user.CanAfford(5001))
	})
}

func TestUserFromStorage(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2023, 2, 1, 12, 0, 0, 0, time.UTC)

	user := UserFromStorage(42, "shopper@example.com", "$2a$10$hash", 2500, createdAt, updatedAt)

	assert.Equal(t, uint64(42), user.ID)
	assert.Equal(t, "shopper@example.com", user.Email)
	assert.Equal(t, int64(2500), user.WalletBalance())
	assert.Equal(t, createdAt, user.CreatedAt)
	assert.Equal(t, updatedAt, user.UpdatedAt)
}
