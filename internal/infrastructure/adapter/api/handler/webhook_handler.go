package handler

import (
	"io"
	"net/http"

	domainerr "github.com/davidokon/secretshop/internal/domain/error"
	coreport "github.com/davidokon/secretshop/internal/domain/port/core"
	"github.com/davidokon/secretshop/internal/domain/usecase/funding"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/metrics"
	"github.com/gin-gonic/gin"
)

// SignatureHeader carries the provider's HMAC signature over the raw body
const SignatureHeader = "x-paystack-signature"

// maxWebhookBody bounds webhook payload size (1 MiB)
const maxWebhookBody = 1 << 20

// WebhookHandler handles provider webhook deliveries
type WebhookHandler struct {
	fundings      *funding.Service
	webhookSecret string
	metrics       *metrics.Metrics
	logger        coreport.Logger
}

// NewWebhookHandler creates a new webhook handler instance
func NewWebhookHandler(fundings *funding.Service, webhookSecret string, m *metrics.Metrics, logger coreport.Logger) *WebhookHandler {
	return &WebhookHandler{
		fundings:      fundings,
		webhookSecret: webhookSecret,
		metrics:       m,
		logger:        logger,
	}
}

// Paystack handles POST /webhook/paystack. The signature is verified over
// the raw body before any parsing or state change; a bad signature is
// rejected with no effect.
func (h *WebhookHandler) Paystack(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		h.metrics.WebhookEventsTotal.WithLabelValues("read_error").Inc()
		c.Status(http.StatusBadRequest)
		return
	}

	signature := c.GetHeader(SignatureHeader)
	if !funding.VerifySignature(h.webhookSecret, body, signature) {
		h.metrics.WebhookEventsTotal.WithLabelValues("bad_signature").Inc()
		h.logger.Warn("Webhook rejected, invalid signature", map[string]any{
			"ip": c.ClientIP(),
		})
		respondError(c, domainerr.ErrInvalidSignature)
		return
	}

	if err := h.fundings.HandleProviderEvent(c.Request.Context(), body); err != nil {
		h.metrics.WebhookEventsTotal.WithLabelValues("error").Inc()
		h.logger.Error("Webhook processing failed", map[string]any{
			"error": err.Error(),
		})
		// Non-2xx makes the provider retry the delivery.
		respondError(c, err)
		return
	}

	h.metrics.WebhookEventsTotal.WithLabelValues("ok").Inc()
	c.Status(http.StatusOK)
}
