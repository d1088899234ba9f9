package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/med-a-api/internal/models"
	appErrors "github.com/noah-isme/med-a-api/pkg/errors"
)

type billingGateway interface {
	VerifyAccess(ctx context.Context, identity models.RequesterIdentity) (*models.SubscriptionVerdict, error)
	InitiatePayment(ctx context.Context, identity models.RequesterIdentity, planID string) (*models.PaymentInitiation, error)
	Plans(ctx context.Context) ([]models.Plan, error)
}

// CheckSubscriptionRequest captures the subscription check payload.
type CheckSubscriptionRequest struct {
	Email    string `json:"email" validate:"required,email"`
	DeviceID string `json:"deviceId" validate:"required"`
}

// InitiatePaymentRequest captures the payment initiation payload.
type InitiatePaymentRequest struct {
	Email    string `json:"email" validate:"required,email"`
	DeviceID string `json:"deviceId" validate:"required"`
	PlanID   string `json:"planId" validate:"required"`
}

// SubscriptionService proxies the billing gateway for the client-facing
// endpoints. Verdicts are never cached; the plan list is, briefly.
type SubscriptionService struct {
	gateway   billingGateway
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	plansTTL  time.Duration
}

// NewSubscriptionService constructs SubscriptionService.
func NewSubscriptionService(gw billingGateway, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, plansTTL time.Duration) *SubscriptionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if plansTTL <= 0 {
		plansTTL = 5 * time.Minute
	}
	return &SubscriptionService{gateway: gw, cache: cache, metrics: metrics, validator: validate, logger: logger, plansTTL: plansTTL}
}

// Check returns a fresh gateway verdict for the identity.
func (s *SubscriptionService) Check(ctx context.Context, req CheckSubscriptionRequest) (*models.SubscriptionVerdict, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subscription check payload")
	}

	start := time.Now()
	verdict, err := s.gateway.VerifyAccess(ctx, models.RequesterIdentity{Email: req.Email, DeviceID: req.DeviceID})
	if s.metrics != nil {
		s.metrics.RecordGatewayCall("verify-access", err == nil, time.Since(start))
	}
	if err != nil {
		return nil, err
	}
	return verdict, nil
}

// Initiate starts a checkout for the given plan.
func (s *SubscriptionService) Initiate(ctx context.Context, req InitiatePaymentRequest) (*models.PaymentInitiation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}

	start := time.Now()
	initiation, err := s.gateway.InitiatePayment(ctx, models.RequesterIdentity{Email: req.Email, DeviceID: req.DeviceID}, req.PlanID)
	if s.metrics != nil {
		s.metrics.RecordGatewayCall("initiate-payment", err == nil, time.Since(start))
	}
	if err != nil {
		return nil, err
	}
	return initiation, nil
}

const plansCacheKey = "gateway:plans"

// Plans returns the purchasable plans, cached briefly to spare the
// gateway. Plans carry no per-identity state so caching them is safe.
func (s *SubscriptionService) Plans(ctx context.Context) ([]models.Plan, error) {
	var cached []models.Plan
	if hit, _ := s.cache.Get(ctx, plansCacheKey, &cached); hit {
		return cached, nil
	}

	start := time.Now()
	plans, err := s.gateway.Plans(ctx)
	if s.metrics != nil {
		s.metrics.RecordGatewayCall("plans", err == nil, time.Since(start))
	}
	if err != nil {
		return nil, err
	}

	_ = s.cache.Set(ctx, plansCacheKey, plans, s.plansTTL)
	return plans, nil
}
