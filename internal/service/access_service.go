package service

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/med-a-api/internal/models"
	appErrors "github.com/noah-isme/med-a-api/pkg/errors"
)

type contentReader interface {
	FindByID(ctx context.Context, id int) (*models.ContentItem, error)
}

type subscriptionGateway interface {
	VerifyAccess(ctx context.Context, identity models.RequesterIdentity) (*models.SubscriptionVerdict, error)
}

type attemptStore interface {
	Count(ctx context.Context, contentID int, deviceID string) (int, error)
	Record(ctx context.Context, contentID int, deviceID string, window time.Duration) error
	Reset(ctx context.Context, contentID int, deviceID string) error
}

// AccessService is the access decision engine. Given a content item and
// a requester identity it decides whether the raw resource URL may be
// disclosed. The gate order is fixed: existence, attempt cap, gateway
// verdict (disabled, then access), lock state, password. The gateway is
// consulted exactly once per resolution and never cached; a gateway
// failure denies access.
type AccessService struct {
	content  contentReader
	gateway  subscriptionGateway
	attempts attemptStore
	metrics  *MetricsService
	logger   *zap.Logger

	maxAttempts   int
	attemptWindow time.Duration
}

// NewAccessService constructs the access decision engine.
func NewAccessService(content contentReader, gw subscriptionGateway, attempts attemptStore, metrics *MetricsService, logger *zap.Logger, maxAttempts int, attemptWindow time.Duration) *AccessService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if attemptWindow <= 0 {
		attemptWindow = 15 * time.Minute
	}
	return &AccessService{
		content:       content,
		gateway:       gw,
		attempts:      attempts,
		metrics:       metrics,
		logger:        logger,
		maxAttempts:   maxAttempts,
		attemptWindow: attemptWindow,
	}
}

// Resolve runs the full gate for one content item and one requester.
// Outcomes that are part of the normal flow (payment required, invalid
// password, account disabled) come back as an AccessResult; failures
// outside the flow (unknown content, gateway down, attempt cap) come
// back as typed errors.
func (s *AccessService) Resolve(ctx context.Context, contentID int, identity models.RequesterIdentity, password string) (*models.AccessResult, error) {
	item, err := s.content.FindByID(ctx, contentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "content not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load content")
	}

	if item.IsLocked && s.attempts != nil {
		count, err := s.attempts.Count(ctx, contentID, identity.DeviceID)
		if err != nil {
			// The limiter is best-effort; losing it must not take the
			// catalog down. The gateway gate below still applies.
			s.logger.Warn("attempt limiter unavailable", zap.Int("content_id", contentID), zap.Error(err))
		} else if count >= s.maxAttempts {
			s.record(models.AccessKind("throttled"))
			return nil, appErrors.ErrTooManyAttempts
		}
	}

	start := time.Now()
	verdict, err := s.gateway.VerifyAccess(ctx, identity)
	if s.metrics != nil {
		s.metrics.RecordGatewayCall("verify-access", err == nil, time.Since(start))
	}
	if err != nil {
		// Fail closed: a gateway failure is never access.
		return nil, err
	}

	if verdict.Disabled {
		s.record(models.AccessAccountDisabled)
		return &models.AccessResult{Kind: models.AccessAccountDisabled}, nil
	}

	if !verdict.Access {
		s.record(models.AccessPaymentRequired)
		return &models.AccessResult{Kind: models.AccessPaymentRequired, CheckoutURL: verdict.CheckoutURL}, nil
	}

	if !item.IsLocked {
		s.record(models.AccessGranted)
		return &models.AccessResult{Kind: models.AccessGranted, URL: item.URL}, nil
	}

	stored := ""
	if item.Password != nil {
		stored = *item.Password
	}
	if password == "" || subtle.ConstantTimeCompare([]byte(password), []byte(stored)) != 1 {
		// An empty password is the client discovering the lock to render
		// its prompt, not a guess; only actual guesses count toward the cap.
		if password != "" && s.attempts != nil {
			if err := s.attempts.Record(ctx, contentID, identity.DeviceID, s.attemptWindow); err != nil {
				s.logger.Warn("failed to record password attempt", zap.Int("content_id", contentID), zap.Error(err))
			}
		}
		s.record(models.AccessInvalidPassword)
		return &models.AccessResult{Kind: models.AccessInvalidPassword}, nil
	}

	if s.attempts != nil {
		if err := s.attempts.Reset(ctx, contentID, identity.DeviceID); err != nil {
			s.logger.Warn("failed to reset password attempts", zap.Int("content_id", contentID), zap.Error(err))
		}
	}
	s.record(models.AccessGranted)
	return &models.AccessResult{Kind: models.AccessGranted, URL: item.URL}, nil
}

func (s *AccessService) record(kind models.AccessKind) {
	if s.metrics != nil {
		s.metrics.RecordAccessDecision(string(kind))
	}
}
