package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/davidokon/secretshop/internal/domain/usecase/funding"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/logger"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/metrics"
	mockpersistence "github.com/davidokon/secretshop/mocks/port/persistence"
)

func newWebhookRouter(secret string) (*gin.Engine, *mockpersistence.MockTransactionRepository) {
	gin.SetMode(gin.TestMode)

	mockTxns := new(mockpersistence.MockTransactionRepository)
	fundings := funding.NewService(nil, nil, mockTxns, nil, nil, nil, nil, nil, logger.NewNoopLogger())
	h := NewWebhookHandler(fundings, secret, metrics.New(), logger.NewNoopLogger())

	router := gin.New()
	router.POST("/webhook/paystack", h.Paystack)
	return router, mockTxns
}

func TestWebhookPaystack(t *testing.T) {
	t.Run("should reject a missing signature", func(t *testing.T) {
		router, mockTxns := newWebhookRouter("whsec")

		req := httptest.NewRequest(http.MethodPost, "/webhook/paystack",
			strings.NewReader(`{"event":"charge.success","data":{"reference":"fund_abc"}}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		mockTxns.AssertNotCalled(t, "GetByReference")
	})

	t.Run("should reject a wrong signature without touching state", func(t *testing.T) {
		router, mockTxns := newWebhookRouter("whsec")

		req := httptest.NewRequest(http.MethodPost, "/webhook/paystack",
			strings.NewReader(`{"event":"charge.success","data":{"reference":"fund_abc"}}`))
		req.Header.Set(SignatureHeader, "deadbeef")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		mockTxns.AssertNotCalled(t, "GetByReference")
	})

	t.Run("should acknowledge a signed event it does not act on", func(t *testing.T) {
		router, mockTxns := newWebhookRouter("whsec")

		body := `{"event":"charge.failed","data":{"reference":"fund_abc"}}`
		req := httptest.NewRequest(http.MethodPost, "/webhook/paystack", strings.NewReader(body))
		req.Header.Set(SignatureHeader, "b529d1b9174cc53bc7c30456879b223432164b82a67fa3b366af22bc87b9a188fdf5b50f2bc701cf356221fe0c8495531e668a3189e6f504b551bfd93a267755")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockTxns.AssertNotCalled(t, "GetByReference")
	})
}
