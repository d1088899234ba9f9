// Package client is the consumer-side SDK for the MED-A API. It wraps
// the catalog and verification endpoints and drives the access flow a
// viewer app walks through before a resource URL is disclosed.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/noah-isme/med-a-api/internal/models"
	appErrors "github.com/noah-isme/med-a-api/pkg/errors"
)

const defaultTimeout = 10 * time.Second

// Client talks to a MED-A API server on behalf of one requester
// identity. The device ID is minted once per Client and reused for
// every call so the server-side gates see a stable pair.
type Client struct {
	http     *resty.Client
	identity models.RequesterIdentity
}

// Option customises a Client.
type Option func(*Client)

// WithDeviceID pins the device ID instead of minting a fresh one.
// Apps persist the minted ID locally and pass it back on restart.
func WithDeviceID(id string) Option {
	return func(c *Client) {
		c.identity.DeviceID = id
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// New constructs a Client for the given server and requester email.
func New(baseURL, email string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(defaultTimeout).
			SetHeader("Accept", "application/json"),
		identity: models.RequesterIdentity{Email: email},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.identity.DeviceID == "" {
		c.identity.DeviceID = uuid.NewString()
	}
	return c
}

// Identity returns the identity this client presents to the server.
func (c *Client) Identity() models.RequesterIdentity {
	return c.identity
}

type envelope struct {
	Data       json.RawMessage    `json:"data"`
	Error      *appErrors.Error   `json:"error"`
	Pagination *models.Pagination `json:"pagination"`
}

// verifyPayload mirrors the server's verification request.
type verifyPayload struct {
	Email    string `json:"email"`
	DeviceID string `json:"deviceId"`
	Password string `json:"password,omitempty"`
}

type verifyData struct {
	Success     bool   `json:"success"`
	Kind        string `json:"kind"`
	URL         string `json:"url"`
	CheckoutURL string `json:"checkoutUrl"`
}

// Verify runs the server-side access gate for one content item and
// returns the decision. Flow outcomes (granted, payment required,
// invalid password, account disabled) come back as an AccessResult;
// transport failures, unknown content and the attempt cap come back as
// errors.
func (c *Client) Verify(ctx context.Context, contentID int, password string) (*models.AccessResult, error) {
	var env envelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(verifyPayload{Email: c.identity.Email, DeviceID: c.identity.DeviceID, Password: password}).
		SetResult(&env).
		SetError(&env).
		Post(fmt.Sprintf("/api/content/%d/verify", contentID))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrGatewayUnavailable.Code, http.StatusBadGateway, "server unreachable")
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		var data verifyData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "malformed verify response")
		}
		return &models.AccessResult{Kind: models.AccessGranted, URL: data.URL}, nil
	case http.StatusPaymentRequired:
		var data verifyData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "malformed verify response")
		}
		return &models.AccessResult{Kind: models.AccessPaymentRequired, CheckoutURL: data.CheckoutURL}, nil
	case http.StatusForbidden:
		if env.Error != nil && env.Error.Code == appErrors.ErrAccountDisabled.Code {
			return &models.AccessResult{Kind: models.AccessAccountDisabled}, nil
		}
		return &models.AccessResult{Kind: models.AccessInvalidPassword}, nil
	}

	if env.Error != nil {
		return nil, env.Error
	}
	return nil, appErrors.Wrap(fmt.Errorf("unexpected status %d", resp.StatusCode()), appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "unexpected verify response")
}

// Content lists the redacted catalog for a class.
func (c *Client) Content(ctx context.Context, classID, page, limit int) ([]models.ContentResponse, *models.Pagination, error) {
	var env envelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"classId": fmt.Sprint(classID),
			"page":    fmt.Sprint(page),
			"limit":   fmt.Sprint(limit),
		}).
		SetResult(&env).
		SetError(&env).
		Get("/api/content")
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrGatewayUnavailable.Code, http.StatusBadGateway, "server unreachable")
	}
	if resp.IsError() {
		if env.Error != nil {
			return nil, nil, env.Error
		}
		return nil, nil, appErrors.Wrap(fmt.Errorf("status %d", resp.StatusCode()), appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "content listing failed")
	}
	var items []models.ContentResponse
	if err := json.Unmarshal(env.Data, &items); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "malformed content listing")
	}
	return items, env.Pagination, nil
}

// Plans lists the purchasable subscription plans.
func (c *Client) Plans(ctx context.Context) ([]models.Plan, error) {
	var env envelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&env).
		SetError(&env).
		Get("/api/subscription/plans")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrGatewayUnavailable.Code, http.StatusBadGateway, "server unreachable")
	}
	if resp.IsError() {
		if env.Error != nil {
			return nil, env.Error
		}
		return nil, appErrors.Wrap(fmt.Errorf("status %d", resp.StatusCode()), appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "plan listing failed")
	}
	var plans []models.Plan
	if err := json.Unmarshal(env.Data, &plans); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "malformed plan listing")
	}
	return plans, nil
}

// InitiatePayment starts a checkout for the client's identity.
func (c *Client) InitiatePayment(ctx context.Context, planID string) (*models.PaymentInitiation, error) {
	var env envelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"email":    c.identity.Email,
			"deviceId": c.identity.DeviceID,
			"planId":   planID,
		}).
		SetResult(&env).
		SetError(&env).
		Post("/api/subscription/initiate")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrGatewayUnavailable.Code, http.StatusBadGateway, "server unreachable")
	}
	if resp.IsError() {
		if env.Error != nil {
			return nil, env.Error
		}
		return nil, appErrors.Wrap(fmt.Errorf("status %d", resp.StatusCode()), appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "payment initiation failed")
	}
	var initiation models.PaymentInitiation
	if err := json.Unmarshal(env.Data, &initiation); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "malformed payment response")
	}
	return &initiation, nil
}
