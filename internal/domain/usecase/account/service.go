package account

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

// walletCacheTTL bounds staleness of the cached wallet view. Credits and
// purchases invalidate eagerly; the TTL is the backstop.
const walletCacheTTL = 60 * coreport.Second

// Service covers shopper identity and self-service views: registration,
// login, the wallet dashboard and order history.
type Service struct {
	userRepo     persistence.UserRepository
	orderRepo    persistence.OrderRepository
	publisher    eventport.Publisher
	cache        cacheport.Cache
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates an account service
func NewService(
	userRepo persistence.UserRepository,
	orderRepo persistence.OrderRepository,
	publisher eventport.Publisher,
	cache cacheport.Cache,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		userRepo:     userRepo,
		orderRepo:    orderRepo,
		publisher:    publisher,
		cache:        cache,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// SignUp registers a new shopper with a zero wallet balance.
func (s *Service) SignUp(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := entity.NewUser(email, password, s.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errs.IsDuplicateUserError(err) {
			s.logger.Warn("Signup rejected, email already registered", map[string]any{
				"email": user.Email,
			})
		}
		return nil, err
	}

	s.logger.Info("User registered", map[string]any{
		"user_id": user.ID,
		"email":   user.Email,
	})

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, eventport.Event{
			Type: eventport.TypeUserRegistered,
			Key:  strconv.FormatUint(user.ID, 10),
			Payload: map[string]any{
				"user_id": user.ID,
				"email":   user.Email,
			},
		}); err != nil {
			s.logger.Warn("Failed to publish registration event", map[string]any{
				"user_id": user.ID,
				"error":   err.Error(),
			})
		}
	}

	return user, nil
}

// LogIn authenticates a shopper by email and password. Unknown email and
// wrong password collapse into the same error so callers cannot probe for
// registered addresses.
func (s *Service) LogIn(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if errs.IsNotFoundError(err) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.CheckPassword(password) {
		s.logger.Warn("Login rejected, bad password", map[string]any{
			"user_id": user.ID,
		})
		return nil, errs.ErrInvalidCredentials
	}

	return user, nil
}

// WalletView is the cached wallet dashboard payload.
type WalletView struct {
	UserID  uint64 `json:"user_id"`
	Email   string `json:"email"`
	Balance string `json:"balance"`
}

// Wallet returns the shopper's wallet view, read through the cache.
func (s *Service) Wallet(ctx context.Context, userID uint64) (*WalletView, error) {
	key := cacheport.WalletKey(userID)

	if s.cache != nil {
		var view WalletView
		hit, err := s.cache.Get(ctx, key, &view)
		if err != nil {
			s.logger.Warn("Wallet cache read failed", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
		} else if hit {
			return &view, nil
		}
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &WalletView{
		UserID:  user.ID,
		Email:   user.Email,
		Balance: user.GetWalletBalance(),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, view, walletCacheTTL.Std()); err != nil {
			s.logger.Warn("Wallet cache write failed", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
	}
	return view, nil
}

// Orders returns the shopper's own orders, newest first.
func (s *Service) Orders(ctx context.Context, userID uint64) ([]*entity.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}
