package catalog

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/davidokon/secretshop/internal/domain/entity"
	errs "github.com/davidokon/secretshop/internal/domain/error"
	"github.com/davidokon/secretshop/internal/domain/port/persistence"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/logger"
	mockcache "github.com/davidokon/secretshop/mocks/port/cache"
	mockcore "github.com/davidokon/secretshop/mocks/port/core"
	mockpersistence "github.com/davidokon/secretshop/mocks/port/persistence"
)

func TestList(t *testing.T) {
	ctx := context.Background()
	filter := persistence.ProductFilter{Country: "US", Platform: "steam"}

	t.Run("should serve the listing from cache on a hit", func(t *testing.T) {
		mockProducts := new(mockpersistence.MockProductRepository)
		mockCache := new(mockcache.MockCache)

		mockCache.On("Get", mock.Anything, "shop:US:steam", mock.AnythingOfType("*catalog.Listing")).
			Run(func(args mock.Arguments) {
				*args.Get(2).(*Listing) = Listing{Countries: []string{"US"}, Platforms: []string{"steam"}}
			}).Return(true, nil)

		service := NewService(mockProducts, nil, nil, mockCache, nil, logger.NewNoopLogger())
		listing, err := service.List(ctx, filter)

		assert.NoError(t, err)
		assert.Equal(t, []string{"US"}, listing.Countries)
		mockProducts.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("should load from the repository and cache on a miss", func(t *testing.T) {
		mockProducts := new(mockpersistence.MockProductRepository)
		mockCache := new(mockcache.MockCache)

		products := []*entity.Product{{
			ID: 3, Name: "Steam Key", Country: "US", Platform: "steam",
			PriceInCents: 4999, Secret: "XXXX-YYYY",
		}}
		var cached any
		mockCache.On("Get", mock.Anything, "shop:US:steam", mock.Anything).Return(false, nil)
		mockProducts.On("List", mock.Anything, filter).Return(products, nil)
		mockProducts.On("DistinctCountries", mock.Anything).Return([]string{"DE", "US"}, nil)
		mockProducts.On("DistinctPlatforms", mock.Anything).Return([]string{"psn", "steam"}, nil)
		mockCache.On("Set", mock.Anything, "shop:US:steam", mock.Anything, 30*time.Second).
			Run(func(args mock.Arguments) {
				cached = args.Get(2)
			}).Return(nil)

		service := NewService(mockProducts, nil, nil, mockCache, nil, logger.NewNoopLogger())
		listing, err := service.List(ctx, filter)

		assert.NoError(t, err)
		assert.Len(t, listing.Products, 1)
		assert.Equal(t, "49.99", listing.Products[0].Price)
		assert.Equal(t, []string{"DE", "US"}, listing.Countries)
		assert.Equal(t, []string{"psn", "steam"}, listing.Platforms)
		mockCache.AssertExpectations(t)

		// The cached value is the projection, never the secret payload.
		serialized, err := json.Marshal(cached)
		assert.NoError(t, err)
		assert.NotContains(t, string(serialized), "XXXX-YYYY")
	})

	t.Run("should fall through to the repository when the cache read fails", func(t *testing.T) {
		mockProducts := new(mockpersistence.MockProductRepository)
		mockCache := new(mockcache.MockCache)

		mockCache.On("Get", mock.Anything, "shop:US:steam", mock.Anything).Return(false, assert.AnError)
		mockProducts.On("List", mock.Anything, filter).Return([]*entity.Product{}, nil)
		mockProducts.On("DistinctCountries", mock.Anything).Return([]string{}, nil)
		mockProducts.On("DistinctPlatforms", mock.Anything).Return([]string{}, nil)
		mockCache.On("Set", mock.Anything, "shop:US:steam", mock.Anything, 30*time.Second).Return(nil)

		service := NewService(mockProducts, nil, nil, mockCache, nil, logger.NewNoopLogger())
		listing, err := service.List(ctx, filter)

		assert.NoError(t, err)
		assert.Empty(t, listing.Products)
	})
}

func TestAddProduct(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should create product and invalidate listings", func(t *testing.T) {
		mockProducts := new(mockpersistence.MockProductRepository)
		mockCache := new(mockcache.MockCache)
		mockTime := new(mockcore.MockTimeProvider)
		mockTime.On("Now").Return(fixedTime)

		mockProducts.On("Create", mock.Anything, mock.AnythingOfType("*entity.Product")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*entity.Product).ID = 3
			}).Return(nil)
		mockCache.On("Delete", mock.Anything, "shop:US:steam", "shop::").Return(nil)

		service := NewService(mockProducts, nil, nil, mockCache, mockTime, logger.NewNoopLogger())
		product, err := service.AddProduct(ctx, "Steam Key", "A key", "", "US", "steam", "49.99", "XXXX-YYYY")

		assert.NoError(t, err)
		assert.Equal(t, uint64(3), product.ID)
		assert.Equal(t, int64(4999), product.PriceInCents)
		mockCache.AssertExpectations(t)
	})

	t.Run("should reject invalid input without touching the repository", func(t *testing.T) {
		mockProducts := new(mockpersistence.MockProductRepository)
		mockTime := new(mockcore.MockTimeProvider)

		service := NewService(mockProducts, nil, nil, nil, mockTime, logger.NewNoopLogger())
		_, err := service.AddProduct(ctx, "", "", "", "US", "steam", "10", "secret")

		assert.ErrorIs(t, err, errs.ErrInvalidProductName)
		mockProducts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("should delete product and invalidate listings", func(t *testing.T) {
		mockProducts := new(mockpersistence.MockProductRepository)
		mockCache := new(mockcache.MockCache)

		mockProducts.On("GetByID", mock.Anything, uint64(3)).Return(&entity.Product{
			ID: 3, Name: "Steam Key", Country: "US", Platform: "steam",
		}, nil)
		mockProducts.On("Delete", mock.Anything, uint64(3)).Return(nil)
		mockCache.On("Delete", mock.Anything, "shop:US:steam", "shop::").Return(nil)

		service := NewService(mockProducts, nil, nil, mockCache, nil, logger.NewNoopLogger())
		err := service.DeleteProduct(ctx, 3)

		assert.NoError(t, err)
		mockProducts.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})

	t.Run("should surface missing product", func(t *testing.T) {
		mockProducts := new(mockpersistence.MockProductRepository)

		mockProducts.On("GetByID", mock.Anything, uint64(3)).Return(nil, errs.ErrProductNotFound)

		service := NewService(mockProducts, nil, nil, nil, nil, logger.NewNoopLogger())
		err := service.DeleteProduct(ctx, 3)

		assert.ErrorIs(t, err, errs.ErrProductNotFound)
		mockProducts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestAdminListings(t *testing.T) {
	ctx := context.Background()

	t.Run("should list all orders", func(t *testing.T) {
		mockOrders := new(mockpersistence.MockOrderRepository)
		mockOrders.On("ListAll", mock.Anything).Return([]*entity.Order{{ID: 11}}, nil)

		service := NewService(nil, mockOrders, nil, nil, nil, logger.NewNoopLogger())
		orders, err := service.AllOrders(ctx)

		assert.NoError(t, err)
		assert.Len(t, orders, 1)
	})

	t.Run("should list all users", func(t *testing.T) {
		mockUsers := new(mockpersistence.MockUserRepository)
		mockUsers.On("List", mock.Anything).Return([]*entity.User{{ID: 7}}, nil)

		service := NewService(nil, nil, mockUsers, nil, nil, logger.NewNoopLogger())
		users, err := service.AllUsers(ctx)

		assert.NoError(t, err)
		assert.Len(t, users, 1)
	})
}
