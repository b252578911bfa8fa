package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/davidokon/secretshop/internal/domain/entity"
	errs "github.com/davidokon/secretshop/internal/domain/error"
	eventport "github.com/davidokon/secretshop/internal/domain/port/event"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/logger"
	mockcache "github.com/davidokon/secretshop/mocks/port/cache"
	mockcore "github.com/davidokon/secretshop/mocks/port/core"
	mockevent "github.com/davidokon/secretshop/mocks/port/event"
	mockpersistence "github.com/davidokon/secretshop/mocks/port/persistence"
)

func TestSignUp(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should register user and publish event", func(t *testing.T) {
		mockUsers := new(mockpersistence.MockUserRepository)
		mockPublisher := new(mockevent.MockPublisher)
		mockTime := new(mockcore.MockTimeProvider)
		mockTime.On("Now").Return(fixedTime)

		mockUsers.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*entity.User).ID = 7
			}).Return(nil)
		mockPublisher.On("Publish", mock.Anything, mock.MatchedBy(func(evt eventport.Event) bool {
			return evt.Type == eventport.TypeUserRegistered && evt.Key == "7"
		})).Return(nil)

		service := NewService(mockUsers, nil, mockPublisher, nil, mockTime, logger.NewNoopLogger())
		user, err := service.SignUp(ctx, "Shopper@Example.com", "hunter22")

		assert.NoError(t, err)
		assert.Equal(t, uint64(7), user.ID)
		assert.Equal(t, "shopper@example.com", user.Email)
		assert.Equal(t, "0.00", user.GetWalletBalance())
		mockUsers.AssertExpectations(t)
		mockPublisher.AssertExpectations(t)
	})

	t.Run("should reject duplicate email", func(t *testing.T) {
		mockUsers := new(mockpersistence.MockUserRepository)
		mockTime := new(mockcore.MockTimeProvider)
		mockTime.On("Now").Return(fixedTime)

		mockUsers.On("Create", mock.Anything, mock.Anything).Return(errs.ErrDuplicateUser)

		service := NewService(mockUsers, nil, nil, nil, mockTime, logger.NewNoopLogger())
		user, err := service.SignUp(ctx, "shopper@example.com", "hunter22")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, errs.ErrDuplicateUser)
	})

	t.Run("should reject invalid input without touching the repository", func(t *testing.T) {
		mockUsers := new(mockpersistence.MockUserRepository)
		mockTime := new(mockcore.MockTimeProvider)

		service := NewService(mockUsers, nil, nil, nil, mockTime, logger.NewNoopLogger())

		_, err := service.SignUp(ctx, "not-an-email", "hunter22")
		assert.ErrorIs(t, err, errs.ErrInvalidEmail)

		_, err = service.SignUp(ctx, "shopper@example.com", "123")
		assert.ErrorIs(t, err, errs.ErrWeakPassword)

		mockUsers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLogIn(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	registeredUser := func(t *testing.T) *entity.User {
		mockTime := new(mockcore.MockTimeProvider)
		mockTime.On("Now").Return(fixedTime)
		user, err := entity.NewUser("shopper@example.com", "hunter22", mockTime)
		assert.NoError(t, err)
		user.ID = 7
		return user
	}

	t.Run("should authenticate with correct credentials", func(t *testing.T) {
		mockUsers := new(mockpersistence.MockUserRepository)
		mockUsers.On("GetByEmail", mock.Anything, "shopper@example.com").Return(registeredUser(t), nil)

		service := NewService(mockUsers, nil, nil, nil, nil, logger.NewNoopLogger())
		user, err := service.LogIn(ctx, "Shopper@Example.com ", "hunter22")

		assert.NoError(t, err)
		assert.Equal(t, uint64(7), user.ID)
	})

	t.Run("should collapse unknown email into invalid credentials", func(t *testing.T) {
		mockUsers := new(mockpersistence.MockUserRepository)
		mockUsers.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, errs.ErrUserNotFound)

		service := NewService(mockUsers, nil, nil, nil, nil, logger.NewNoopLogger())
		_, err := service.LogIn(ctx, "nobody@example.com", "hunter22")

		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("should collapse wrong password into invalid credentials", func(t *testing.T) {
		mockUsers := new(mockpersistence.MockUserRepository)
		mockUsers.On("GetByEmail", mock.Anything, "shopper@example.com").Return(registeredUser(t), nil)

		service := NewService(mockUsers, nil, nil, nil, nil, logger.NewNoopLogger())
		_, err := service.LogIn(ctx, "shopper@example.com", "wrong-password")

		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})
}

func TestWallet(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should serve the wallet view from cache on a hit", func(t *testing.T) {
		mockUsers := new(mockpersistence.MockUserRepository)
		mockCache := new(mockcache.MockCache)

		mockCache.On("Get", mock.Anything, "wallet:user:7", mock.AnythingOfType("*account.WalletView")).
			Run(func(args mock.Arguments) {
				*args.Get(2).(*WalletView) = WalletView{UserID: 7, Email: "shopper@example.com", Balance: "50.00"}
			}).Return(true, nil)

		service := NewService(mockUsers, nil, nil, mockCache, nil, logger.NewNoopLogger())
		view, err := service.Wallet(ctx, 7)

		assert.NoError(t, err)
		assert.Equal(t, "50.00", view.Balance)
		mockUsers.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("should load from the repository and cache on a miss", func(t *testing.T) {
		mockUsers := new(mockpersistence.MockUserRepository)
		mockCache := new(mockcache.MockCache)

		shopper := entity.UserFromStorage(7, "shopper@example.com", "hash", 5000, fixedTime, fixedTime)
		mockCache.On("Get", mock.Anything, "wallet:user:7", mock.Anything).Return(false, nil)
		mockUsers.On("GetByID", mock.Anything, uint64(7)).Return(shopper, nil)
		mockCache.On("Set", mock.Anything, "wallet:user:7", mock.Anything, 60*time.Second).Return(nil)

		service := NewService(mockUsers, nil, nil, mockCache, nil, logger.NewNoopLogger())
		view, err := service.Wallet(ctx, 7)

		assert.NoError(t, err)
		assert.Equal(t, uint64(7), view.UserID)
		assert.Equal(t, "50.00", view.Balance)
		mockCache.AssertExpectations(t)
	})

	t.Run("should work without a cache configured", func(t *testing.T) {
		mockUsers := new(mockpersistence.MockUserRepository)
		shopper := entity.UserFromStorage(7, "shopper@example.com", "hash", 5000, fixedTime, fixedTime)
		mockUsers.On("GetByID", mock.Anything, uint64(7)).Return(shopper, nil)

		service := NewService(mockUsers, nil, nil, nil, nil, logger.NewNoopLogger())
		view, err := service.Wallet(ctx, 7)

		assert.NoError(t, err)
		assert.Equal(t, "50.00", view.Balance)
	})
}

func TestOrders(t *testing.T) {
	ctx := context.Background()

	mockOrders := new(mockpersistence.MockOrderRepository)
	mockOrders.On("ListByUser", mock.Anything, uint64(7)).Return([]*entity.Order{
		{ID: 11, UserID: 7, TotalInCents: 3000},
	}, nil)

	service := NewService(nil, mockOrders, nil, nil, nil, logger.NewNoopLogger())
	orders, err := service.Orders(ctx, 7)

	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, uint64(11), orders[0].ID)
}
