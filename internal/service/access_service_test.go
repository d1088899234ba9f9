package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/med-a-api/internal/models"
	appErrors "github.com/noah-isme/med-a-api/pkg/errors"
)

type contentReaderStub struct {
	item *models.ContentItem
	err  error
}

func (s contentReaderStub) FindByID(ctx context.Context, id int) (*models.ContentItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.item == nil {
		return nil, sql.ErrNoRows
	}
	return s.item, nil
}

type gatewayStub struct {
	verdict *models.SubscriptionVerdict
	err     error
	calls   int
}

func (s *gatewayStub) VerifyAccess(ctx context.Context, identity models.RequesterIdentity) (*models.SubscriptionVerdict, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.verdict, nil
}

type attemptStoreStub struct {
	count    int
	countErr error
	recorded int
	resets   int
}

func (s *attemptStoreStub) Count(ctx context.Context, contentID int, deviceID string) (int, error) {
	return s.count + s.recorded, s.countErr
}

func (s *attemptStoreStub) Record(ctx context.Context, contentID int, deviceID string, window time.Duration) error {
	s.recorded++
	return nil
}

func (s *attemptStoreStub) Reset(ctx context.Context, contentID int, deviceID string) error {
	s.resets++
	return nil
}

func strPtr(s string) *string { return &s }

var testIdentity = models.RequesterIdentity{Email: "viewer@example.com", DeviceID: "device-1"}

func unlockedItem() *models.ContentItem {
	return &models.ContentItem{ID: 1, ClassID: 10, Title: "Anatomy Notes", Type: models.ContentTypeNotes, URL: "https://cdn.example.com/anatomy.pdf"}
}

func lockedItem() *models.ContentItem {
	return &models.ContentItem{ID: 2, ClassID: 10, Title: "FQE Paper", Type: models.ContentTypeFQE, URL: "https://cdn.example.com/fqe.pdf", IsLocked: true, Password: strPtr("s3cret")}
}

func newAccessService(content contentReaderStub, gw *gatewayStub, attempts *attemptStoreStub) *AccessService {
	var store attemptStore
	if attempts != nil {
		store = attempts
	}
	return NewAccessService(content, gw, store, nil, zap.NewNop(), 5, 15*time.Minute)
}

func TestAccessServiceUnknownContent(t *testing.T) {
	gw := &gatewayStub{verdict: &models.SubscriptionVerdict{Access: true}}
	service := newAccessService(contentReaderStub{}, gw, nil)

	_, err := service.Resolve(context.Background(), 99, testIdentity, "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Zero(t, gw.calls, "gateway must not be consulted for unknown content")
}

func TestAccessServiceGatewayFailureDenies(t *testing.T) {
	gw := &gatewayStub{err: appErrors.ErrGatewayUnavailable}
	service := newAccessService(contentReaderStub{item: unlockedItem()}, gw, nil)

	_, err := service.Resolve(context.Background(), 1, testIdentity, "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrGatewayUnavailable.Code, appErrors.FromError(err).Code)
}

func TestAccessServiceDisabledAccount(t *testing.T) {
	// Disabled wins even when the gateway also reports an active
	// subscription and the password would match.
	gw := &gatewayStub{verdict: &models.SubscriptionVerdict{Access: true, Disabled: true}}
	service := newAccessService(contentReaderStub{item: lockedItem()}, gw, &attemptStoreStub{})

	result, err := service.Resolve(context.Background(), 2, testIdentity, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, models.AccessAccountDisabled, result.Kind)
	assert.Empty(t, result.URL)
}

func TestAccessServicePaymentGatePrecedesLock(t *testing.T) {
	gw := &gatewayStub{verdict: &models.SubscriptionVerdict{Access: false, CheckoutURL: "https://pay.example.com/checkout"}}
	attempts := &attemptStoreStub{}
	service := newAccessService(contentReaderStub{item: lockedItem()}, gw, attempts)

	result, err := service.Resolve(context.Background(), 2, testIdentity, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, models.AccessPaymentRequired, result.Kind)
	assert.Equal(t, "https://pay.example.com/checkout", result.CheckoutURL)
	assert.Empty(t, result.URL, "no URL disclosure without a subscription")
	assert.Zero(t, attempts.recorded, "an unpaid request is not a password attempt")
}

func TestAccessServiceUnlockedGranted(t *testing.T) {
	gw := &gatewayStub{verdict: &models.SubscriptionVerdict{Access: true}}
	service := newAccessService(contentReaderStub{item: unlockedItem()}, gw, nil)

	result, err := service.Resolve(context.Background(), 1, testIdentity, "")
	require.NoError(t, err)
	assert.Equal(t, models.AccessGranted, result.Kind)
	assert.Equal(t, "https://cdn.example.com/anatomy.pdf", result.URL)
	assert.Equal(t, 1, gw.calls)
}

func TestAccessServiceLockedWrongPassword(t *testing.T) {
	gw := &gatewayStub{verdict: &models.SubscriptionVerdict{Access: true}}
	attempts := &attemptStoreStub{}
	service := newAccessService(contentReaderStub{item: lockedItem()}, gw, attempts)

	result, err := service.Resolve(context.Background(), 2, testIdentity, "wrong")
	require.NoError(t, err)
	assert.Equal(t, models.AccessInvalidPassword, result.Kind)
	assert.Empty(t, result.URL)
	assert.Equal(t, 1, attempts.recorded)
	assert.Zero(t, attempts.resets)
}

func TestAccessServiceLockedEmptyPassword(t *testing.T) {
	gw := &gatewayStub{verdict: &models.SubscriptionVerdict{Access: true}}
	attempts := &attemptStoreStub{}
	service := newAccessService(contentReaderStub{item: lockedItem()}, gw, attempts)

	result, err := service.Resolve(context.Background(), 2, testIdentity, "")
	require.NoError(t, err)
	assert.Equal(t, models.AccessInvalidPassword, result.Kind)
	assert.Zero(t, attempts.recorded, "discovering the lock is not a guess")
}

func TestAccessServiceRepeatedOpensDoNotBurnCap(t *testing.T) {
	// Clients open a locked item without a password to learn they must
	// prompt; doing so repeatedly must never lock a subscriber out.
	gw := &gatewayStub{verdict: &models.SubscriptionVerdict{Access: true}}
	attempts := &attemptStoreStub{}
	service := newAccessService(contentReaderStub{item: lockedItem()}, gw, attempts)

	for i := 0; i < 5; i++ {
		result, err := service.Resolve(context.Background(), 2, testIdentity, "")
		require.NoError(t, err)
		assert.Equal(t, models.AccessInvalidPassword, result.Kind)
	}
	assert.Zero(t, attempts.recorded)

	result, err := service.Resolve(context.Background(), 2, testIdentity, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, models.AccessGranted, result.Kind)
	assert.Equal(t, "https://cdn.example.com/fqe.pdf", result.URL)
}

func TestAccessServiceLockedCorrectPassword(t *testing.T) {
	gw := &gatewayStub{verdict: &models.SubscriptionVerdict{Access: true}}
	attempts := &attemptStoreStub{count: 3}
	service := newAccessService(contentReaderStub{item: lockedItem()}, gw, attempts)

	result, err := service.Resolve(context.Background(), 2, testIdentity, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, models.AccessGranted, result.Kind)
	assert.Equal(t, "https://cdn.example.com/fqe.pdf", result.URL)
	assert.Equal(t, 1, attempts.resets)
	assert.Zero(t, attempts.recorded)
}

func TestAccessServiceAttemptCap(t *testing.T) {
	gw := &gatewayStub{verdict: &models.SubscriptionVerdict{Access: true}}
	attempts := &attemptStoreStub{count: 5}
	service := newAccessService(contentReaderStub{item: lockedItem()}, gw, attempts)

	_, err := service.Resolve(context.Background(), 2, testIdentity, "s3cret")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrTooManyAttempts.Code, appErrors.FromError(err).Code)
	assert.Zero(t, gw.calls, "throttled requests never reach the gateway")
}

func TestAccessServiceLimiterFailureFailsOpen(t *testing.T) {
	// Losing Redis must not take the catalog down; the gateway and
	// password gates still apply.
	gw := &gatewayStub{verdict: &models.SubscriptionVerdict{Access: true}}
	attempts := &attemptStoreStub{countErr: assert.AnError}
	service := newAccessService(contentReaderStub{item: lockedItem()}, gw, attempts)

	result, err := service.Resolve(context.Background(), 2, testIdentity, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, models.AccessGranted, result.Kind)
}

func TestAccessServiceUnlockedSkipsLimiter(t *testing.T) {
	gw := &gatewayStub{verdict: &models.SubscriptionVerdict{Access: true}}
	attempts := &attemptStoreStub{count: 100}
	service := newAccessService(contentReaderStub{item: unlockedItem()}, gw, attempts)

	result, err := service.Resolve(context.Background(), 1, testIdentity, "")
	require.NoError(t, err)
	assert.Equal(t, models.AccessGranted, result.Kind)
}
