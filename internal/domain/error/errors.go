package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientFunds   = 4001
	CodeInvalidAmount       = 4002
	CodeValidation          = 4003
	CodeProductSold         = 4004
	CodeInvalidCredentials  = 4010
	CodeInvalidSignature    = 4011
	CodeDuplicateUser       = 4090
	CodeDuplicateReference  = 4091
	CodeProductNotFound     = 4040
	CodeUserNotFound        = 4041
	CodeTransactionNotFound = 4042

	// 5xxx - Server errors
	CodeGateway        = 5020
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrInsufficientFunds is returned when a wallet cannot cover a purchase
	ErrInsufficientFunds = errors.New("insufficient wallet balance")

	// ErrInvalidAmount is returned when a monetary amount format is invalid
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when a monetary amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrAmountTooSmall is returned when a funding amount is below the minimum
	ErrAmountTooSmall = errors.New("funding amount must be at least 1.00")

	// ErrProductNotFound is returned when the requested product doesn't exist
	ErrProductNotFound = errors.New("product not found")

	// ErrProductSold is returned when a product has already been purchased
	ErrProductSold = errors.New("product already sold")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrOrderNotFound is returned when the requested order doesn't exist
	ErrOrderNotFound = errors.New("order not found")

	// ErrTransactionNotFound is returned when no transaction matches a reference
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidReference is returned when a funding reference is empty or malformed
	ErrInvalidReference = errors.New("invalid funding reference")

	// ErrDuplicateReference is returned when a funding reference already exists
	ErrDuplicateReference = errors.New("transaction with this reference already exists")

	// ErrDuplicateUser is returned when the email is already registered
	ErrDuplicateUser = errors.New("email already registered")

	// ErrInvalidEmail is returned when a signup email fails validation
	ErrInvalidEmail = errors.New("valid email is required")

	// ErrWeakPassword is returned when a signup password is too short
	ErrWeakPassword = errors.New("password must be at least 6 characters")

	// ErrInvalidCredentials is returned on any login mismatch
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidPasscode is returned when the admin passcode doesn't match
	ErrInvalidPasscode = errors.New("invalid passcode")

	// ErrInvalidSignature is returned when a webhook signature fails verification
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrInvalidProductName is returned when an admin product has no name
	ErrInvalidProductName = errors.New("product name is required")

	// ErrMissingSecret is returned when an admin product has no secret payload
	ErrMissingSecret = errors.New("secret info is required")

	// ErrMissingProductFilter is returned when country or platform is missing
	ErrMissingProductFilter = errors.New("country and platform are required")

	// ErrGatewayUnavailable is returned when the payment provider call fails
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrPaymentNotSuccessful is returned when the gateway reports a non-success status
	ErrPaymentNotSuccessful = errors.New("payment not successful")

	// ErrDatabaseConnection is returned when there's a problem reaching the store
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount), errors.Is(err, ErrAmountTooSmall):
		return CodeInvalidAmount
	case errors.Is(err, ErrProductSold):
		return CodeProductSold
	case errors.Is(err, ErrProductNotFound):
		return CodeProductNotFound
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrTransactionNotFound), errors.Is(err, ErrOrderNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrDuplicateUser):
		return CodeDuplicateUser
	case errors.Is(err, ErrDuplicateReference):
		return CodeDuplicateReference
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidPasscode):
		return CodeInvalidCredentials
	case errors.Is(err, ErrInvalidSignature):
		return CodeInvalidSignature
	case errors.Is(err, ErrInvalidEmail), errors.Is(err, ErrWeakPassword),
		errors.Is(err, ErrInvalidProductName), errors.Is(err, ErrMissingSecret),
		errors.Is(err, ErrMissingProductFilter), errors.Is(err, ErrInvalidReference):
		return CodeValidation
	case errors.Is(err, ErrGatewayUnavailable), errors.Is(err, ErrPaymentNotSuccessful):
		return CodeGateway
	default:
		return CodeInternalServer
	}
}

// PurchaseError represents an error raised while processing a purchase
type PurchaseError struct {
	UserID    uint64
	ProductID uint64
	Price     string
	Balance   string
	Err       error
}

// Error implements the error interface for PurchaseError
func (e *PurchaseError) Error() string {
	return fmt.Sprintf("purchase failed for user %d on product %d (price: %s, balance: %s): %v",
		e.UserID, e.ProductID, e.Price, e.Balance, e.Err)
}

// Unwrap returns the underlying error
func (e *PurchaseError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *PurchaseError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "purchase_error",
		"user_id":    e.UserID,
		"product_id": e.ProductID,
		"price":      e.Price,
		"balance":    e.Balance,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewPurchaseError creates a detailed purchase error
func NewPurchaseError(userID, productID uint64, price, balance string, err error) error {
	return &PurchaseError{
		UserID:    userID,
		ProductID: productID,
		Price:     price,
		Balance:   balance,
		Err:       err,
	}
}

// FundingError represents an error raised while processing wallet funding
type FundingError struct {
	Reference string
	UserID    uint64
	Amount    string
	Reason    string
	Err       error
}

// Error implements the error interface for FundingError
func (e *FundingError) Error() string {
	return fmt.Sprintf("funding error for reference %s (user: %d, amount: %s): %s - %v",
		e.Reference, e.UserID, e.Amount, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *FundingError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *FundingError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "funding_error",
		"reference":  e.Reference,
		"user_id":    e.UserID,
		"amount":     e.Amount,
		"reason":     e.Reason,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewFundingError creates a detailed funding error
func NewFundingError(reference string, userID uint64, amount, reason string, err error) error {
	return &FundingError{
		Reference: reference,
		UserID:    userID,
		Amount:    amount,
		Reason:    reason,
		Err:       err,
	}
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}

// IsValidationError checks if the error stems from malformed user input
func IsValidationError(err error) bool {
	code := ErrorCode(err)
	return code == CodeValidation || code == CodeInvalidAmount
}

// IsInsufficientFundsError checks if the error is related to wallet balance
func IsInsufficientFundsError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsProductSoldError checks if the error is an already-sold conflict
func IsProductSoldError(err error) bool {
	return errors.Is(err, ErrProductSold)
}

// IsDuplicateUserError checks if the error is a duplicate signup
func IsDuplicateUserError(err error) bool {
	return errors.Is(err, ErrDuplicateUser)
}
