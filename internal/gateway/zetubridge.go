// Package gateway talks to the external subscription verification
// service. The gateway is the only authority for access and disabled
// state; every failure here surfaces as GATEWAY_UNAVAILABLE and is
// never treated as granted access.
package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/noah-isme/med-a-api/internal/models"
	"github.com/noah-isme/med-a-api/pkg/config"
	appErrors "github.com/noah-isme/med-a-api/pkg/errors"
)

// Client is a thin adapter over the billing provider's HTTP API.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient builds a gateway client with a bounded request timeout.
func NewClient(cfg config.GatewayConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{http: http, logger: logger}
}

type verdictPayload struct {
	Access      bool   `json:"access"`
	Disabled    bool   `json:"disabled"`
	CheckoutURL string `json:"checkoutUrl"`
}

// VerifyAccess asks the gateway whether the identity currently has
// access. The verdict is produced fresh on every call.
func (c *Client) VerifyAccess(ctx context.Context, identity models.RequesterIdentity) (*models.SubscriptionVerdict, error) {
	var payload verdictPayload
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("email", identity.Email).
		SetQueryParam("device_id", identity.DeviceID).
		SetResult(&payload).
		Get("/verify-access")
	if err := c.check(resp, err, "verify-access"); err != nil {
		return nil, err
	}

	return &models.SubscriptionVerdict{
		Access:      payload.Access,
		Disabled:    payload.Disabled,
		CheckoutURL: payload.CheckoutURL,
	}, nil
}

type initiatePaymentRequest struct {
	Email    string `json:"email"`
	DeviceID string `json:"deviceId"`
	PlanID   string `json:"planId"`
}

// InitiatePayment starts a checkout for the given plan.
func (c *Client) InitiatePayment(ctx context.Context, identity models.RequesterIdentity, planID string) (*models.PaymentInitiation, error) {
	var payload models.PaymentInitiation
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(initiatePaymentRequest{Email: identity.Email, DeviceID: identity.DeviceID, PlanID: planID}).
		SetResult(&payload).
		Post("/initiate-payment")
	if err := c.check(resp, err, "initiate-payment"); err != nil {
		return nil, err
	}

	return &payload, nil
}

// Plans fetches the purchasable plans advertised by the gateway.
func (c *Client) Plans(ctx context.Context) ([]models.Plan, error) {
	var payload []models.Plan
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&payload).
		Get("/plans")
	if err := c.check(resp, err, "plans"); err != nil {
		return nil, err
	}

	return payload, nil
}

func (c *Client) check(resp *resty.Response, err error, op string) error {
	if err != nil {
		c.logger.Warn("gateway call failed", zap.String("op", op), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrGatewayUnavailable.Code, appErrors.ErrGatewayUnavailable.Status, appErrors.ErrGatewayUnavailable.Message)
	}
	if resp.IsError() {
		c.logger.Warn("gateway returned error status",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode()),
		)
		return appErrors.Wrap(
			fmt.Errorf("gateway %s: status %d", op, resp.StatusCode()),
			appErrors.ErrGatewayUnavailable.Code,
			appErrors.ErrGatewayUnavailable.Status,
			appErrors.ErrGatewayUnavailable.Message,
		)
	}
	return nil
}
