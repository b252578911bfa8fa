package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/davidokon/secretshop/internal/domain/entity"
	errs "github.com/davidokon/secretshop/internal/domain/error"
	coreport "github.com/davidokon/secretshop/internal/domain/port/core"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// UserRepository implements the UserRepository port using GORM
type UserRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *UserRepository) modelToEntity(userModel *model.User) *entity.User {
	return entity.UserFromStorage(
		userModel.ID,
		userModel.Email,
		userModel.PasswordHash,
		userModel.WalletBalance,
		userModel.CreatedAt,
		userModel.UpdatedAt,
	)
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, userID uint64) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrUserNotFound
	}
	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrDuplicateUser
	}
	if r.errorClassifier.IsConnectionError(err) {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	return fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
}

// Create persists a new user. A duplicate email maps to ErrDuplicateUser.
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := model.User{
		Email:         user.Email,
		PasswordHash:  user.PasswordHash,
		WalletBalance: user.WalletBalance(),
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&userModel)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			r.logger.Warn("Email already registered", map[string]any{
				"email": user.Email,
			})
			return errs.ErrDuplicateUser
		}
		return r.handleDatabaseError("creating user", result.Error, 0)
	}

	user.ID = userModel.ID

	r.logger.Info("User created successfully", map[string]any{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user", result.Error, id)
	}
	return r.modelToEntity(&userModel), nil
}

// GetByEmail retrieves a user by normalized email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&userModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, r.handleDatabaseError("getting user by email", result.Error, 0)
	}
	return r.modelToEntity(&userModel), nil
}

// List returns all registered users
func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	var userModels []model.User
	result := r.db.WithContext(ctx).Order("id").Find(&userModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing users", result.Error, 0)
	}

	users := make([]*entity.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, r.modelToEntity(&userModels[i]))
	}
	return users, nil
}

// Credit adds amountInCents to the user's wallet in a single update and
// returns the user with the new balance.
func (r *UserRepository) Credit(ctx context.Context, userID uint64, amountInCents int64) (*entity.User, error) {
	if amountInCents <= 0 {
		return nil, errs.ErrInvalidAmount
	}

	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"wallet_balance": gorm.Expr("wallet_balance + ?", amountInCents),
			"updated_at":     r.timeProvider.Now(),
		})
	if result.Error != nil {
		return nil, r.handleDatabaseError("crediting wallet", result.Error, userID)
	}
	if result.RowsAffected == 0 {
		return nil, errs.ErrUserNotFound
	}

	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	r.logger.Info("Wallet credited", map[string]any{
		"user_id": userID,
		"amount":  entity.AmountInCentsToString(amountInCents),
		"balance": user.GetWalletBalance(),
	})
	return user, nil
}

// Debit subtracts amountInCents from the user's wallet with a guard on the
// current balance, so the balance can never go negative. When the guard
// rejects, the caller gets ErrInsufficientFunds and the row is untouched.
func (r *UserRepository) Debit(ctx context.Context, userID uint64, amountInCents int64) (*entity.User, error) {
	if amountInCents <= 0 {
		return nil, errs.ErrInvalidAmount
	}

	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND wallet_balance >= ?", userID, amountInCents).
		Updates(map[string]any{
			"wallet_balance": gorm.Expr("wallet_balance - ?", amountInCents),
			"updated_at":     r.timeProvider.Now(),
		})
	if result.Error != nil {
		return nil, r.handleDatabaseError("debiting wallet", result.Error, userID)
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing user from a guard rejection.
		if _, err := r.GetByID(ctx, userID); err != nil {
			return nil, err
		}
		r.logger.Warn("Debit rejected by balance guard", map[string]any{
			"user_id": userID,
			"amount":  entity.AmountInCentsToString(amountInCents),
		})
		return nil, errs.ErrInsufficientFunds
	}

	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	r.logger.Info("Wallet debited", map[string]any{
		"user_id": userID,
		"amount":  entity.AmountInCentsToString(amountInCents),
		"balance": user.GetWalletBalance(),
	})
	return user, nil
}
