package entity

import (
	"strings"
	"time"

	errs "github.com/davidokon/secretshop/internal/domain/error"
	coreport "github.com/davidokon/secretshop/internal/domain/port/core"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum accepted password length at signup.
const MinPasswordLength = 6

// User represents a shopper with a funded wallet
type User struct {
	ID            uint64    // Unique identifier for the user
	Email         string    // Login identity, stored lowercase
	PasswordHash  string    // bcrypt hash of the password
	walletBalance int64     // Wallet balance in cents to avoid floating point issues (private)
	CreatedAt     time.Time // When the user signed up
	UpdatedAt     time.Time // When the user was last updated
}

// NewUser creates a new user with a hashed password and a zero wallet balance
func NewUser(email, password string, timeProvider coreport.TimeProvider) (*User, error) {
	email = NormalizeEmail(email)
	if !IsValidEmail(email) {
		return nil, errs.ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return nil, errs.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := timeProvider.Now()
	return &User{
		Email:         email,
		PasswordHash:  string(hash),
		walletBalance: 0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// UserFromStorage rebuilds a user entity from persisted state (for internal
// use, like repositories)
func UserFromStorage(id uint64, email, passwordHash string, balanceInCents int64, createdAt, updatedAt time.Time) *User {
	return &User{
		ID:            id,
		Email:         email,
		PasswordHash:  passwordHash,
		walletBalance: balanceInCents,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}

// WalletBalance returns the current wallet balance in cents (for internal use)
func (u *User) WalletBalance() int64 {
	return u.walletBalance
}

// GetWalletBalance returns the wallet balance as a string with 2 decimal places
func (u *User) GetWalletBalance() string {
	return AmountInCentsToString(u.walletBalance)
}

// SetWalletBalance updates the balance directly (for internal use, like repositories)
func (u *User) SetWalletBalance(balanceInCents int64, timeProvider coreport.TimeProvider) {
	u.walletBalance = balanceInCents
	u.UpdatedAt = timeProvider.Now()
}

// CanAfford checks if the user has enough balance for the given price
func (u *User) CanAfford(priceInCents int64) bool {
	return u.walletBalance >= priceInCents
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// NormalizeEmail lowercases and trims an email address for case-insensitive identity
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail performs a minimal structural check on an email address
func IsValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	if strings.Contains(domain, "@") || !strings.Contains(domain, ".") {
		return false
	}
	return !strings.ContainsAny(email, " \t")
}
