package session

import (
	"crypto/subtle"
	"fmt"
	"strconv"
	"time"

	errs "github.com/davidokon/secretshop/internal/domain/error"
	coreport "github.com/davidokon/secretshop/internal/domain/port/core"
	"github.com/golang-jwt/jwt/v5"
)

// AdminConfig represents admin elevation configuration
type AdminConfig struct {
	Passcode   string `mapstructure:"passcode"`
	SigningKey string `mapstructure:"signing_key"`
	TTLMinutes int    `mapstructure:"ttl_minutes"`
}

// AdminGuard mints and verifies signed admin capability tokens. Admin
// rights are never a plain boolean in the session: the session only holds
// a server-signed token, so a tampered cookie cannot grant elevation.
type AdminGuard struct {
	passcode     string
	signingKey   []byte
	ttl          time.Duration
	timeProvider coreport.TimeProvider
}

// NewAdminGuard creates an admin guard
func NewAdminGuard(cfg AdminConfig, timeProvider coreport.TimeProvider) *AdminGuard {
	ttl := time.Duration(cfg.TTLMinutes) * time.Minute
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &AdminGuard{
		passcode:     cfg.Passcode,
		signingKey:   []byte(cfg.SigningKey),
		ttl:          ttl,
		timeProvider: timeProvider,
	}
}

// Elevate checks the submitted passcode in constant time and, on match,
// returns a signed token tying the elevation to the given user.
func (g *AdminGuard) Elevate(userID uint64, passcode string) (string, error) {
	if g.passcode == "" {
		return "", errs.ErrInvalidPasscode
	}
	if subtle.ConstantTimeCompare([]byte(g.passcode), []byte(passcode)) != 1 {
		return "", errs.ErrInvalidPasscode
	}

	now := g.timeProvider.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign admin token: %w", err)
	}
	return signed, nil
}

// Verify checks a token's signature, expiry and that it was minted for
// the given user.
func (g *AdminGuard) Verify(tokenString string, userID uint64) bool {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.signingKey, nil
	}, jwt.WithTimeFunc(g.timeProvider.Now))
	if err != nil || !token.Valid {
		return false
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return false
	}
	return claims.Subject == strconv.FormatUint(userID, 10)
}
