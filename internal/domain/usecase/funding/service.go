package funding

import (
	"context"
	"errors"
	"strconv"

	"github.com/davidokon/secretshop/internal/domain/entity"
	errs "github.com/davidokon/secretshop/internal/domain/error"
	cacheport "github.com/davidokon/secretshop/internal/domain/port/cache"
	coreport "github.com/davidokon/secretshop/internal/domain/port/core"
	eventport "github.com/davidokon/secretshop/internal/domain/port/event"
	"github.com/davidokon/secretshop/internal/domain/port/gateway"
	"github.com/davidokon/secretshop/internal/domain/port/persistence"
)

// ReferencePrefix marks wallet funding references
const ReferencePrefix = "fund_"

// Service implements the wallet funding flow. Initiate records an
// initialized transaction and hands the shopper to the gateway; Confirm
// (browser callback) and the webhook handler both converge on
// settleTransaction, where a single conditional status transition decides
// whether the wallet credit happens. Whichever path observes the payment
// first wins; the other becomes a no-op.
type Service struct {
	uow          persistence.UnitOfWork
	userRepo     persistence.UserRepository
	txRepo       persistence.TransactionRepository
	gw           gateway.PaymentGateway
	refGen       coreport.ReferenceGenerator
	publisher    eventport.Publisher
	cache        cacheport.Cache
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a funding service
func NewService(
	uow persistence.UnitOfWork,
	userRepo persistence.UserRepository,
	txRepo persistence.TransactionRepository,
	gw gateway.PaymentGateway,
	refGen coreport.ReferenceGenerator,
	publisher eventport.Publisher,
	cache cacheport.Cache,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		userRepo:     userRepo,
		txRepo:       txRepo,
		gw:           gw,
		refGen:       refGen,
		publisher:    publisher,
		cache:        cache,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Initiate starts a wallet funding of the given 2-dp major-unit amount and
// returns the gateway URL the shopper is redirected to.
func (s *Service) Initiate(ctx context.Context, userID uint64, amount, callbackURL string) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	reference := ReferencePrefix + s.refGen.Next()
	txn, err := entity.NewFundingTransaction(reference, userID, amount, s.timeProvider)
	if err != nil {
		return "", err
	}

	if err := s.txRepo.Create(ctx, txn); err != nil {
		return "", err
	}

	result, err := s.gw.Initialize(ctx, gateway.InitializeRequest{
		Email:       user.Email,
		AmountMinor: entity.CentsToMinorUnit(txn.AmountInCents),
		Reference:   reference,
		CallbackURL: callbackURL,
	})
	if err != nil {
		s.logger.Error("Payment initialization failed", map[string]any{
			"reference": reference,
			"user_id":   userID,
			"error":     err.Error(),
		})
		return "", errs.NewFundingError(reference, userID, txn.GetAmount(), "gateway initialize failed", err)
	}

	s.logger.Info("Funding initiated", map[string]any{
		"reference": reference,
		"user_id":   userID,
		"amount":    txn.GetAmount(),
	})
	return result.AuthorizationURL, nil
}

// Confirm handles the browser-redirect callback: it asks the gateway for
// the authoritative payment status and, on success, settles the
// transaction. Safe to call any number of times per reference.
func (s *Service) Confirm(ctx context.Context, reference string) error {
	if reference == "" {
		return errs.ErrInvalidReference
	}

	txn, err := s.txRepo.GetByReference(ctx, reference)
	if err != nil {
		return err
	}

	result, err := s.gw.Verify(ctx, reference)
	if err != nil {
		return errs.NewFundingError(reference, derefUserID(txn.UserID), txn.GetAmount(), "gateway verify failed", err)
	}

	if !result.Succeeded() {
		s.logger.Warn("Payment not successful on verification", map[string]any{
			"reference": reference,
			"status":    result.Status,
		})
		if err := s.txRepo.MarkFailed(ctx, reference, string(result.Raw)); err != nil &&
			!errors.Is(err, errs.ErrTransactionNotFound) {
			return err
		}
		return errs.ErrPaymentNotSuccessful
	}

	return s.settleTransaction(ctx, reference, txn.UserID, "", result.AmountMinor, string(result.Raw))
}

// settleTransaction performs the gated credit: inside one unit-of-work
// transaction, the conditional success transition fires at most once per
// reference, and only the caller that fired it credits the wallet.
// userID may be nil for webhook-created transactions; email is the
// fallback identity from the provider payload.
func (s *Service) settleTransaction(ctx context.Context, reference string, userID *uint64, email string, amountMinor int64, metadata string) error {
	amountInCents := entity.MinorUnitToCents(amountMinor)

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = s.uow.Rollback(txCtx)
		}
	}()

	transactions := s.uow.GetTransactionRepository(txCtx)
	users := s.uow.GetUserRepository(txCtx)

	credited, err := transactions.MarkSucceeded(txCtx, reference, metadata)
	if err != nil {
		return err
	}
	if !credited {
		// Already settled by the other path; success -> success is a no-op.
		_ = s.uow.Rollback(txCtx)
		s.logger.Info("Transaction already settled, skipping credit", map[string]any{
			"reference": reference,
		})
		return nil
	}

	user, err := s.resolveUser(txCtx, users, userID, email)
	if err != nil {
		return err
	}

	updated, err := users.Credit(txCtx, user.ID, amountInCents)
	if err != nil {
		return err
	}

	if err = s.uow.Commit(txCtx); err != nil {
		return err
	}

	s.logger.Info("Wallet credited", map[string]any{
		"reference": reference,
		"user_id":   updated.ID,
		"amount":    entity.AmountInCentsToString(amountInCents),
		"balance":   updated.GetWalletBalance(),
	})

	s.afterCredit(ctx, reference, updated, amountInCents)
	return nil
}

// resolveUser finds the wallet owner for a settling transaction: the stored
// user reference when present, otherwise the provider's customer email.
func (s *Service) resolveUser(ctx context.Context, users persistence.UserRepository, userID *uint64, email string) (*entity.User, error) {
	if userID != nil {
		return users.GetByID(ctx, *userID)
	}
	if email == "" {
		return nil, errs.ErrUserNotFound
	}
	return users.GetByEmail(ctx, entity.NormalizeEmail(email))
}

// afterCredit handles post-commit side effects, best effort
func (s *Service) afterCredit(ctx context.Context, reference string, user *entity.User, amountInCents int64) {
	if s.cache != nil {
		if err := s.cache.Delete(ctx, cacheport.WalletKey(user.ID)); err != nil {
			s.logger.Warn("Failed to invalidate wallet cache", map[string]any{
				"user_id": user.ID,
				"error":   err.Error(),
			})
		}
	}

	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventport.Event{
		Type: eventport.TypeWalletCredited,
		Key:  strconv.FormatUint(user.ID, 10),
		Payload: map[string]any{
			"reference": reference,
			"user_id":   user.ID,
			"amount":    entity.AmountInCentsToString(amountInCents),
			"balance":   user.GetWalletBalance(),
		},
	}); err != nil {
		s.logger.Warn("Failed to publish wallet credit event", map[string]any{
			"reference": reference,
			"error":     err.Error(),
		})
	}
}

func derefUserID(id *uint64) uint64 {
	if id == nil {
		return 0
	}
	return *id
}
