package funding

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/davidokon/secretshop/internal/domain/entity"
	errs "github.com/davidokon/secretshop/internal/domain/error"
	eventport "github.com/davidokon/secretshop/internal/domain/port/event"
	gatewayport "github.com/davidokon/secretshop/internal/domain/port/gateway"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/logger"
	mockcache "github.com/davidokon/secretshop/mocks/port/cache"
	mockcore "github.com/davidokon/secretshop/mocks/port/core"
	mockevent "github.com/davidokon/secretshop/mocks/port/event"
	mockgateway "github.com/davidokon/secretshop/mocks/port/gateway"
	mockpersistence "github.com/davidokon/secretshop/mocks/port/persistence"
)

type fundingMocks struct {
	uow       *mockpersistence.MockUnitOfWork
	users     *mockpersistence.MockUserRepository
	txns      *mockpersistence.MockTransactionRepository
	gw        *mockgateway.MockPaymentGateway
	refGen    *mockcore.MockReferenceGenerator
	publisher *mockevent.MockPublisher
	cache     *mockcache.MockCache
	time      *mockcore.MockTimeProvider
}

func newFundingService() (*Service, *fundingMocks) {
	m := &fundingMocks{
		uow:       new(mockpersistence.MockUnitOfWork),
		users:     new(mockpersistence.MockUserRepository),
		txns:      new(mockpersistence.MockTransactionRepository),
		gw:        new(mockgateway.MockPaymentGateway),
		refGen:    new(mockcore.MockReferenceGenerator),
		publisher: new(mockevent.MockPublisher),
		cache:     new(mockcache.MockCache),
		time:      new(mockcore.MockTimeProvider),
	}
	service := NewService(m.uow, m.users, m.txns, m.gw, m.refGen, m.publisher, m.cache, m.time, logger.NewNoopLogger())
	return service, m
}

func TestInitiate(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	shopper := entity.UserFromStorage(7, "shopper@example.com", "hash", 0, fixedTime, fixedTime)

	t.Run("should create transaction and return authorization URL", func(t *testing.T) {
		service, m := newFundingService()
		m.time.On("Now").Return(fixedTime)
		m.users.On("GetByID", mock.Anything, uint64(7)).Return(shopper, nil)
		m.refGen.On("Next").Return("abc123")
		m.txns.On("Create", mock.Anything, mock.MatchedBy(func(txn *entity.Transaction) bool {
			return txn.Reference == "fund_abc123" &&
				txn.AmountInCents == 5000 &&
				txn.Status == entity.StatusInitialized &&
				txn.UserID != nil && *txn.UserID == 7
		})).Return(nil)
		m.gw.On("Initialize", mock.Anything, gatewayport.InitializeRequest{
			Email:       "shopper@example.com",
			AmountMinor: 5000,
			Reference:   "fund_abc123",
			CallbackURL: "http://localhost:8080/wallet/callback",
		}).Return(&gatewayport.InitializeResult{AuthorizationURL: "https://checkout.example/abc123"}, nil)

		url, err := service.Initiate(ctx, 7, "50.00", "http://localhost:8080/wallet/callback")

		assert.NoError(t, err)
		assert.Equal(t, "https://checkout.example/abc123", url)
		m.txns.AssertExpectations(t)
		m.gw.AssertExpectations(t)
	})

	t.Run("should reject amount below minimum before touching the gateway", func(t *testing.T) {
		service, m := newFundingService()
		m.users.On("GetByID", mock.Anything, uint64(7)).Return(shopper, nil)
		m.refGen.On("Next").Return("abc123")

		_, err := service.Initiate(ctx, 7, "0.50", "http://localhost:8080/wallet/callback")

		assert.ErrorIs(t, err, errs.ErrAmountTooSmall)
		m.txns.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		m.gw.AssertNotCalled(t, "Initialize", mock.Anything, mock.Anything)
	})

	t.Run("should wrap gateway failure as funding error", func(t *testing.T) {
		service, m := newFundingService()
		m.time.On("Now").Return(fixedTime)
		m.users.On("GetByID", mock.Anything, uint64(7)).Return(shopper, nil)
		m.refGen.On("Next").Return("abc123")
		m.txns.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.gw.On("Initialize", mock.Anything, mock.Anything).Return(nil, errs.ErrGatewayUnavailable)

		_, err := service.Initiate(ctx, 7, "50.00", "http://localhost:8080/wallet/callback")

		assert.ErrorIs(t, err, errs.ErrGatewayUnavailable)
	})
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	userID := uint64(7)
	raw := json.RawMessage(`{"status":"success"}`)

	initializedTxn := func() *entity.Transaction {
		return &entity.Transaction{
			ID:            1,
			Reference:     "fund_abc123",
			UserID:        &userID,
			AmountInCents: 5000,
			Status:        entity.StatusInitialized,
		}
	}

	t.Run("should credit the wallet exactly once on success", func(t *testing.T) {
		service, m := newFundingService()
		txnsInTx := new(mockpersistence.MockTransactionRepository)
		usersInTx := new(mockpersistence.MockUserRepository)

		shopper := entity.UserFromStorage(7, "shopper@example.com", "hash", 0, fixedTime, fixedTime)
		credited := entity.UserFromStorage(7, "shopper@example.com", "hash", 5000, fixedTime, fixedTime)

		m.txns.On("GetByReference", mock.Anything, "fund_abc123").Return(initializedTxn(), nil)
		m.gw.On("Verify", mock.Anything, "fund_abc123").Return(&gatewayport.VerifyResult{
			Status:      "success",
			AmountMinor: 5000,
			Raw:         raw,
		}, nil)
		m.uow.On("Begin", mock.Anything).Return(ctx, nil)
		m.uow.On("GetTransactionRepository", mock.Anything).Return(txnsInTx)
		m.uow.On("GetUserRepository", mock.Anything).Return(usersInTx)
		txnsInTx.On("MarkSucceeded", mock.Anything, "fund_abc123", string(raw)).Return(true, nil)
		usersInTx.On("GetByID", mock.Anything, uint64(7)).Return(shopper, nil)
		usersInTx.On("Credit", mock.Anything, uint64(7), int64(5000)).Return(credited, nil)
		m.uow.On("Commit", mock.Anything).Return(nil)
		m.cache.On("Delete", mock.Anything, "wallet:user:7").Return(nil)
		m.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(evt eventport.Event) bool {
			return evt.Type == eventport.TypeWalletCredited && evt.Key == "7"
		})).Return(nil)

		err := service.Confirm(ctx, "fund_abc123")

		assert.NoError(t, err)
		m.uow.AssertNotCalled(t, "Rollback", mock.Anything)
		txnsInTx.AssertExpectations(t)
		usersInTx.AssertExpectations(t)
		m.publisher.AssertExpectations(t)
	})

	t.Run("should skip credit when transaction is already settled", func(t *testing.T) {
		service, m := newFundingService()
		txnsInTx := new(mockpersistence.MockTransactionRepository)
		usersInTx := new(mockpersistence.MockUserRepository)

		m.txns.On("GetByReference", mock.Anything, "fund_abc123").Return(initializedTxn(), nil)
		m.gw.On("Verify", mock.Anything, "fund_abc123").Return(&gatewayport.VerifyResult{
			Status:      "success",
			AmountMinor: 5000,
			Raw:         raw,
		}, nil)
		m.uow.On("Begin", mock.Anything).Return(ctx, nil)
		m.uow.On("GetTransactionRepository", mock.Anything).Return(txnsInTx)
		m.uow.On("GetUserRepository", mock.Anything).Return(usersInTx)
		txnsInTx.On("MarkSucceeded", mock.Anything, "fund_abc123", string(raw)).Return(false, nil)
		m.uow.On("Rollback", mock.Anything).Return(nil)

		err := service.Confirm(ctx, "fund_abc123")

		assert.NoError(t, err)
		usersInTx.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything)
		m.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should mark transaction failed when payment did not succeed", func(t *testing.T) {
		service, m := newFundingService()

		failedRaw := json.RawMessage(`{"status":"failed"}`)
		m.txns.On("GetByReference", mock.Anything, "fund_abc123").Return(initializedTxn(), nil)
		m.gw.On("Verify", mock.Anything, "fund_abc123").Return(&gatewayport.VerifyResult{
			Status:      "failed",
			AmountMinor: 5000,
			Raw:         failedRaw,
		}, nil)
		m.txns.On("MarkFailed", mock.Anything, "fund_abc123", string(failedRaw)).Return(nil)

		err := service.Confirm(ctx, "fund_abc123")

		assert.ErrorIs(t, err, errs.ErrPaymentNotSuccessful)
		m.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("should reject empty reference", func(t *testing.T) {
		service, m := newFundingService()

		err := service.Confirm(ctx, "")

		assert.ErrorIs(t, err, errs.ErrInvalidReference)
		m.txns.AssertNotCalled(t, "GetByReference", mock.Anything, mock.Anything)
	})

	t.Run("should surface unknown reference", func(t *testing.T) {
		service, m := newFundingService()

		m.txns.On("GetByReference", mock.Anything, "fund_missing").Return(nil, errs.ErrTransactionNotFound)

		err := service.Confirm(ctx, "fund_missing")

		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
		m.gw.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	})
}
