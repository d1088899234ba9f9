package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/med-a-api/internal/models"
	"github.com/noah-isme/med-a-api/pkg/config"
	appErrors "github.com/noah-isme/med-a-api/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(config.GatewayConfig{BaseURL: server.URL, Timeout: 2 * time.Second}, zap.NewNop())
	return client, server
}

func TestClientVerifyAccessActive(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/verify-access", r.URL.Path)
		assert.Equal(t, "viewer@example.com", r.URL.Query().Get("email"))
		assert.Equal(t, "device-1", r.URL.Query().Get("device_id"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access": true}`)) //nolint:errcheck
	}))

	verdict, err := client.VerifyAccess(context.Background(), models.RequesterIdentity{Email: "viewer@example.com", DeviceID: "device-1"})
	require.NoError(t, err)
	assert.True(t, verdict.Access)
	assert.False(t, verdict.Disabled)
}

func TestClientVerifyAccessLapsed(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access": false, "checkoutUrl": "https://pay.example.com/checkout"}`)) //nolint:errcheck
	}))

	verdict, err := client.VerifyAccess(context.Background(), models.RequesterIdentity{Email: "viewer@example.com", DeviceID: "device-1"})
	require.NoError(t, err)
	assert.False(t, verdict.Access)
	assert.Equal(t, "https://pay.example.com/checkout", verdict.CheckoutURL)
}

func TestClientVerifyAccessDisabled(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access": false, "disabled": true}`)) //nolint:errcheck
	}))

	verdict, err := client.VerifyAccess(context.Background(), models.RequesterIdentity{Email: "viewer@example.com", DeviceID: "device-1"})
	require.NoError(t, err)
	assert.True(t, verdict.Disabled)
}

func TestClientVerifyAccessServerError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.VerifyAccess(context.Background(), models.RequesterIdentity{Email: "viewer@example.com", DeviceID: "device-1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrGatewayUnavailable.Code, appErrors.FromError(err).Code)
}

func TestClientVerifyAccessTimeout(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.VerifyAccess(ctx, models.RequesterIdentity{Email: "viewer@example.com", DeviceID: "device-1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrGatewayUnavailable.Code, appErrors.FromError(err).Code)
}

func TestClientInitiatePayment(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/initiate-payment", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "checkoutUrl": "https://pay.example.com/checkout"}`)) //nolint:errcheck
	}))

	initiation, err := client.InitiatePayment(context.Background(), models.RequesterIdentity{Email: "viewer@example.com", DeviceID: "device-1"}, "monthly")
	require.NoError(t, err)
	assert.True(t, initiation.Success)
	assert.Equal(t, "https://pay.example.com/checkout", initiation.CheckoutURL)
}

func TestClientPlans(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/plans", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": "monthly", "name": "Monthly", "price": 300}]`)) //nolint:errcheck
	}))

	plans, err := client.Plans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "monthly", plans[0].ID)
	assert.Equal(t, 300.0, plans[0].Price)
}
