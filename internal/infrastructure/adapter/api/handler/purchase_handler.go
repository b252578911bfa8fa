package handler

import (
	"net/http"
	"strconv"

	domainerr "github.com/davidokon/secretshop/internal/domain/error"
	coreport "github.com/davidokon/secretshop/internal/domain/port/core"
	"github.com/davidokon/secretshop/internal/domain/usecase/purchase"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/api/dto"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/api/middleware"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/metrics"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/session"
	"github.com/gin-gonic/gin"
)

// PurchaseHandler handles the buy flow
type PurchaseHandler struct {
	purchases *purchase.Service
	sessions  *session.Manager
	metrics   *metrics.Metrics
	logger    coreport.Logger
}

// NewPurchaseHandler creates a new purchase handler instance
func NewPurchaseHandler(purchases *purchase.Service, sessions *session.Manager, m *metrics.Metrics, logger coreport.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		purchases: purchases,
		sessions:  sessions,
		metrics:   m,
		logger:    logger,
	}
}

// Buy handles POST /buy/:productId
func (h *PurchaseHandler) Buy(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		_ = h.sessions.Flash(c.Writer, c.Request, "Unknown product")
		c.Redirect(http.StatusFound, "/shop")
		return
	}
	h.buy(c, productID)
}

// Pay handles POST /pay, the legacy payment form. It funnels into the
// same purchase flow as /buy/:productId.
func (h *PurchaseHandler) Pay(c *gin.Context) {
	var req dto.PayRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = h.sessions.Flash(c.Writer, c.Request, "Unknown product")
		c.Redirect(http.StatusFound, "/shop")
		return
	}
	h.buy(c, req.ProductID)
}

func (h *PurchaseHandler) buy(c *gin.Context, productID uint64) {
	userID := middleware.UserID(c)

	order, err := h.purchases.Purchase(c.Request.Context(), userID, productID)
	if err != nil {
		h.metrics.PurchasesTotal.WithLabelValues(outcomeFor(err)).Inc()
		_ = h.sessions.Flash(c.Writer, c.Request, messageFor(err))
		if domainerr.IsInsufficientFundsError(err) {
			c.Redirect(http.StatusFound, "/wallet")
			return
		}
		c.Redirect(http.StatusFound, "/shop")
		return
	}

	h.metrics.PurchasesTotal.WithLabelValues("success").Inc()
	_ = h.sessions.Flash(c.Writer, c.Request, "Purchase successful, order #"+strconv.FormatUint(order.ID, 10))
	c.Redirect(http.StatusFound, "/payment/"+strconv.FormatUint(productID, 10))
}

// outcomeFor buckets purchase errors for the outcome metric label
func outcomeFor(err error) string {
	switch {
	case domainerr.IsProductSoldError(err):
		return "already_sold"
	case domainerr.IsInsufficientFundsError(err):
		return "insufficient_funds"
	case domainerr.IsNotFoundError(err):
		return "not_found"
	default:
		return "error"
	}
}
