package handler

import (
	"errors"
	"net/http"

	domainerr "github.com/davidokon/secretshop/internal/domain/error"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case domainerr.IsProductSoldError(err):
		return http.StatusConflict
	case domainerr.IsInsufficientFundsError(err):
		return http.StatusPaymentRequired
	case domainerr.IsDuplicateUserError(err):
		return http.StatusConflict
	case errors.Is(err, domainerr.ErrInvalidCredentials),
		errors.Is(err, domainerr.ErrInvalidPasscode),
		errors.Is(err, domainerr.ErrInvalidSignature):
		return http.StatusUnauthorized
	case domainerr.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, domainerr.ErrGatewayUnavailable),
		errors.Is(err, domainerr.ErrPaymentNotSuccessful):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// messageFor returns the user-facing message for a domain error. Internal
// details never leak to clients.
func messageFor(err error) string {
	if statusFor(err) == http.StatusInternalServerError {
		return "Internal server error"
	}
	return err.Error()
}

// respondError writes the standardized JSON error body
func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: messageFor(err),
	})
}
