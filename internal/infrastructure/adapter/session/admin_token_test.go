package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	mockcore "github.com/davidokon/secretshop/mocks/port/core"
)

func newTestGuard(timeProvider *mockcore.MockTimeProvider) *AdminGuard {
	return NewAdminGuard(AdminConfig{
		Passcode:   "letmein",
		SigningKey: "test-signing-key",
		TTLMinutes: 60,
	}, timeProvider)
}

func TestAdminGuardElevate(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should mint a token that verifies for the same user", func(t *testing.T) {
		mockTime := new(mockcore.MockTimeProvider)
		mockTime.On("Now").Return(fixedTime)
		guard := newTestGuard(mockTime)

		token, err := guard.Elevate(7, "letmein")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.True(t, guard.Verify(token, 7))
	})

	t.Run("should reject a wrong passcode", func(t *testing.T) {
		mockTime := new(mockcore.MockTimeProvider)
		guard := newTestGuard(mockTime)

		token, err := guard.Elevate(7, "wrong")

		assert.Error(t, err)
		assert.Empty(t, token)
	})

	t.Run("should reject elevation when no passcode is configured", func(t *testing.T) {
		mockTime := new(mockcore.MockTimeProvider)
		guard := NewAdminGuard(AdminConfig{SigningKey: "k"}, mockTime)

		_, err := guard.Elevate(7, "")

		assert.Error(t, err)
	})
}

func TestAdminGuardVerify(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should reject a token minted for another user", func(t *testing.T) {
		mockTime := new(mockcore.MockTimeProvider)
		mockTime.On("Now").Return(fixedTime)
		guard := newTestGuard(mockTime)

		token, err := guard.Elevate(7, "letmein")
		assert.NoError(t, err)

		assert.False(t, guard.Verify(token, 8))
	})

	t.Run("should reject a token signed with another key", func(t *testing.T) {
		mockTime := new(mockcore.MockTimeProvider)
		mockTime.On("Now").Return(fixedTime)
		guard := newTestGuard(mockTime)
		otherGuard := NewAdminGuard(AdminConfig{
			Passcode:   "letmein",
			SigningKey: "another-key",
			TTLMinutes: 60,
		}, mockTime)

		token, err := otherGuard.Elevate(7, "letmein")
		assert.NoError(t, err)

		assert.False(t, guard.Verify(token, 7))
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		mintTime := new(mockcore.MockTimeProvider)
		mintTime.On("Now").Return(fixedTime)
		guard := newTestGuard(mintTime)

		token, err := guard.Elevate(7, "letmein")
		assert.NoError(t, err)

		laterTime := new(mockcore.MockTimeProvider)
		laterTime.On("Now").Return(fixedTime.Add(2 * time.Hour))
		laterGuard := newTestGuard(laterTime)

		assert.False(t, laterGuard.Verify(token, 7))
	})

	t.Run("should reject garbage input", func(t *testing.T) {
		mockTime := new(mockcore.MockTimeProvider)
		mockTime.On("Now").Return(fixedTime)
		guard := newTestGuard(mockTime)

		assert.False(t, guard.Verify("not-a-token", 7))
		assert.False(t, guard.Verify("", 7))
	})
}
