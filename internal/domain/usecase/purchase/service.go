package purchase

import (
	"context"
	"strconv"

	"github.com/davidokon/secretshop/internal/domain/entity"
	errs "github.com/davidokon/secretshop/internal/domain/error"
	cacheport "github.com/davidokon/secretshop/internal/domain/port/cache"
	coreport "github.com/davidokon/secretshop/internal/domain/port/core"
	eventport "github.com/davidokon/secretshop/internal/domain/port/event"
	"github.com/davidokon/secretshop/internal/domain/port/persistence"
)

// Service implements the canonical purchase flow: one conditional update
// marks the product sold, a guarded debit takes the price from the wallet,
// and the order snapshot is written, all inside a single unit-of-work
// transaction so a failure at any step leaves no partial state behind.
type Service struct {
	uow          persistence.UnitOfWork
	productRepo  persistence.ProductRepository
	publisher    eventport.Publisher
	cache        cacheport.Cache
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a purchase service
func NewService(
	uow persistence.UnitOfWork,
	productRepo persistence.ProductRepository,
	publisher eventport.Publisher,
	cache cacheport.Cache,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		productRepo:  productRepo,
		publisher:    publisher,
		cache:        cache,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Purchase buys the given product for the given user and returns the
// created order, whose item snapshot carries the revealed secret.
func (s *Service) Purchase(ctx context.Context, userID, productID uint64) (*entity.Order, error) {
	// Fast-path checks outside the transaction: cheap rejections for
	// missing or visibly sold products. The authoritative sold check is
	// the conditional update below.
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.IsSold {
		s.logger.Warn("Purchase rejected, product already sold", map[string]any{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, errs.ErrProductSold
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = s.uow.Rollback(txCtx)
		}
	}()

	products := s.uow.GetProductRepository(txCtx)
	users := s.uow.GetUserRepository(txCtx)
	orders := s.uow.GetOrderRepository(txCtx)

	// The is_sold false->true transition. Exactly one concurrent buyer can
	// win this update; losers get ErrProductSold and nothing else happens.
	if err = products.MarkSold(txCtx, productID, userID); err != nil {
		return nil, err
	}

	// Guarded debit: only applies while balance >= price, so the wallet
	// never goes negative. Rolling back also un-sells the product.
	// Zero-price listings skip the debit; the wallet row is still read so
	// the post-commit log and event carry the current balance.
	var user *entity.User
	if product.PriceInCents == 0 {
		if user, err = users.GetByID(txCtx, userID); err != nil {
			return nil, err
		}
	} else {
		var debitErr error
		user, debitErr = users.Debit(txCtx, userID, product.PriceInCents)
		if debitErr != nil {
			if errs.IsInsufficientFundsError(debitErr) {
				s.logger.Warn("Purchase rejected, insufficient funds", map[string]any{
					"user_id":    userID,
					"product_id": productID,
					"price":      product.GetPrice(),
				})
			}
			err = debitErr
			return nil, err
		}
	}

	order := entity.NewOrder(userID, product, s.timeProvider)
	if err = orders.Create(txCtx, order); err != nil {
		err = errs.NewPurchaseError(userID, productID, product.GetPrice(), user.GetWalletBalance(), err)
		return nil, err
	}

	if err = s.uow.Commit(txCtx); err != nil {
		err = errs.NewPurchaseError(userID, productID, product.GetPrice(), user.GetWalletBalance(), err)
		return nil, err
	}

	s.logger.Info("Purchase completed", map[string]any{
		"user_id":    userID,
		"product_id": productID,
		"order_id":   order.ID,
		"total":      order.GetTotal(),
		"balance":    user.GetWalletBalance(),
	})

	s.afterPurchase(ctx, user, product, order)

	return order, nil
}

// PaymentView loads a product for the payment page. The secret is only
// visible when the requesting user owns the product.
func (s *Service) PaymentView(ctx context.Context, userID, productID uint64) (*entity.Product, bool, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, false, err
	}
	if product.IsSold && !product.OwnedBy(userID) {
		return nil, false, errs.ErrProductSold
	}
	return product, product.OwnedBy(userID), nil
}

// afterPurchase handles post-commit side effects: audit event and cache
// invalidation. Both are best effort.
func (s *Service) afterPurchase(ctx context.Context, user *entity.User, product *entity.Product, order *entity.Order) {
	if s.cache != nil {
		if err := s.cache.Delete(ctx,
			cacheport.ShopKey(product.Country, product.Platform),
			cacheport.ShopKey("", ""),
			cacheport.WalletKey(user.ID),
		); err != nil {
			s.logger.Warn("Failed to invalidate cache after purchase", map[string]any{
				"error": err.Error(),
			})
		}
	}

	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventport.Event{
		Type: eventport.TypeOrderCompleted,
		Key:  strconv.FormatUint(user.ID, 10),
		Payload: map[string]any{
			"user_id":    user.ID,
			"product_id": product.ID,
			"order_id":   order.ID,
			"total":      order.GetTotal(),
			"created_at": order.CreatedAt.UTC(),
		},
	}); err != nil {
		s.logger.Warn("Failed to publish order event", map[string]any{
			"order_id": order.ID,
			"error":    err.Error(),
		})
	}
}
