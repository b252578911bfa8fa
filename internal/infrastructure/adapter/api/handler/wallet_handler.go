package handler

import (
	"net/http"

	coreport "github.com/davidokon/secretshop/internal/domain/port/core"
	"github.com/davidokon/secretshop/internal/domain/usecase/funding"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/api/dto"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/api/middleware"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/metrics"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/session"
	"github.com/gin-gonic/gin"
)

// WalletHandler handles the wallet funding flow
type WalletHandler struct {
	fundings    *funding.Service
	sessions    *session.Manager
	metrics     *metrics.Metrics
	callbackURL string
	logger      coreport.Logger
}

// NewWalletHandler creates a new wallet handler instance
func NewWalletHandler(fundings *funding.Service, sessions *session.Manager, m *metrics.Metrics, callbackURL string, logger coreport.Logger) *WalletHandler {
	return &WalletHandler{
		fundings:    fundings,
		sessions:    sessions,
		metrics:     m,
		callbackURL: callbackURL,
		logger:      logger,
	}
}

// Fund handles POST /wallet/fund: it initiates a gateway payment and sends
// the shopper to the hosted payment page.
func (h *WalletHandler) Fund(c *gin.Context) {
	userID := middleware.UserID(c)

	var req dto.FundWalletRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = h.sessions.Flash(c.Writer, c.Request, "Amount is required")
		c.Redirect(http.StatusFound, "/wallet")
		return
	}

	authorizationURL, err := h.fundings.Initiate(c.Request.Context(), userID, req.Amount, h.callbackURL)
	if err != nil {
		_ = h.sessions.Flash(c.Writer, c.Request, messageFor(err))
		c.Redirect(http.StatusFound, "/wallet")
		return
	}

	c.Redirect(http.StatusFound, authorizationURL)
}

// Callback handles GET /wallet/callback, the browser redirect back from
// the gateway. Paystack sends the reference as either reference or
// trxref; both are accepted.
func (h *WalletHandler) Callback(c *gin.Context) {
	reference := c.Query("reference")
	if reference == "" {
		reference = c.Query("trxref")
	}

	err := h.fundings.Confirm(c.Request.Context(), reference)
	if err != nil {
		h.metrics.FundingsTotal.WithLabelValues("failed").Inc()
		_ = h.sessions.Flash(c.Writer, c.Request, messageFor(err))
		c.Redirect(http.StatusFound, "/wallet")
		return
	}

	h.metrics.FundingsTotal.WithLabelValues("success").Inc()
	_ = h.sessions.Flash(c.Writer, c.Request, "Wallet funded successfully")
	c.Redirect(http.StatusFound, "/wallet")
}
