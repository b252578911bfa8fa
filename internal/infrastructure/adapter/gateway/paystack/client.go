package paystack

import (
	"context"
	"encoding/json"
	"fmt"

	errs "github.com/davidokon/secretshop/internal/domain/error"
	coreport "github.com/davidokon/secretshop/internal/domain/port/core"
	"github.com/davidokon/secretshop/internal/domain/port/gateway"
	"github.com/guonaihong/gout"
)

// Config represents Paystack API configuration
type Config struct {
	BaseURL   string `mapstructure:"base_url"`
	SecretKey string `mapstructure:"secret_key"`
}

// DefaultBaseURL is the production Paystack API endpoint
const DefaultBaseURL = "https://api.paystack.co"

// Client implements the PaymentGateway port against the Paystack REST API
type Client struct {
	baseURL   string
	secretKey string
	logger    coreport.Logger
}

// NewClient creates a Paystack API client
func NewClient(cfg Config, logger coreport.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:   baseURL,
		secretKey: cfg.SecretKey,
		logger:    logger,
	}
}

// SecretKey exposes the key used for webhook signature verification
func (c *Client) SecretKey() string {
	return c.secretKey
}

type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type verifyResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type verifyData struct {
	Status string `json:"status"`
	Amount int64  `json:"amount"`
}

// Initialize creates a pending charge and returns the hosted payment page URL
func (c *Client) Initialize(ctx context.Context, req gateway.InitializeRequest) (*gateway.InitializeResult, error) {
	var (
		resp initializeResponse
		code int
	)

	err := gout.POST(c.baseURL + "/transaction/initialize").
		WithContext(ctx).
		SetHeader(gout.H{"Authorization": "Bearer " + c.secretKey}).
		SetJSON(gout.H{
			"email":        req.Email,
			"amount":       req.AmountMinor,
			"reference":    req.Reference,
			"callback_url": req.CallbackURL,
		}).
		BindJSON(&resp).
		Code(&code).
		Do()
	if err != nil {
		c.logger.Error("Paystack initialize request failed", map[string]any{
			"reference": req.Reference,
			"error":     err.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrGatewayUnavailable, err.Error())
	}
	if code >= 300 || !resp.Status {
		c.logger.Error("Paystack initialize rejected", map[string]any{
			"reference": req.Reference,
			"code":      code,
			"message":   resp.Message,
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrGatewayUnavailable, resp.Message)
	}

	return &gateway.InitializeResult{
		AuthorizationURL: resp.Data.AuthorizationURL,
		AccessCode:       resp.Data.AccessCode,
	}, nil
}

// Verify fetches the authoritative status of a charge by reference
func (c *Client) Verify(ctx context.Context, reference string) (*gateway.VerifyResult, error) {
	var (
		resp verifyResponse
		code int
	)

	err := gout.GET(c.baseURL + "/transaction/verify/" + reference).
		WithContext(ctx).
		SetHeader(gout.H{"Authorization": "Bearer " + c.secretKey}).
		BindJSON(&resp).
		Code(&code).
		Do()
	if err != nil {
		c.logger.Error("Paystack verify request failed", map[string]any{
			"reference": reference,
			"error":     err.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrGatewayUnavailable, err.Error())
	}
	if code >= 300 || !resp.Status {
		return nil, fmt.Errorf("%w: %s", errs.ErrGatewayUnavailable, resp.Message)
	}

	var data verifyData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: malformed verify payload", errs.ErrGatewayUnavailable)
	}

	return &gateway.VerifyResult{
		Status:      data.Status,
		AmountMinor: data.Amount,
		Raw:         resp.Data,
	}, nil
}
