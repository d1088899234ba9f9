package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/med-a-api/internal/models"
	"github.com/noah-isme/med-a-api/internal/service"
	appErrors "github.com/noah-isme/med-a-api/pkg/errors"
	"github.com/noah-isme/med-a-api/pkg/response"
)

type subscriptionChecker interface {
	Check(ctx context.Context, req service.CheckSubscriptionRequest) (*models.SubscriptionVerdict, error)
	Initiate(ctx context.Context, req service.InitiatePaymentRequest) (*models.PaymentInitiation, error)
	Plans(ctx context.Context) ([]models.Plan, error)
}

// SubscriptionHandler proxies subscription checks and payments.
type SubscriptionHandler struct {
	service subscriptionChecker
}

// NewSubscriptionHandler constructs a subscription handler.
func NewSubscriptionHandler(svc subscriptionChecker) *SubscriptionHandler {
	return &SubscriptionHandler{service: svc}
}

// CheckSubscriptionResponse is the narrowed check payload. The checkout
// URL only travels on verification's 402, never on a bare check.
type CheckSubscriptionResponse struct {
	Access   bool `json:"access"`
	Disabled bool `json:"disabled,omitempty"`
}

// Check godoc
// @Summary Check subscription state for an identity
// @Tags Subscription
// @Accept json
// @Produce json
// @Param payload body service.CheckSubscriptionRequest true "Identity"
// @Success 200 {object} response.Envelope
// @Router /subscription/check [post]
func (h *SubscriptionHandler) Check(c *gin.Context) {
	var req service.CheckSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	verdict, err := h.service.Check(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, CheckSubscriptionResponse{Access: verdict.Access, Disabled: verdict.Disabled}, nil)
}

// Initiate godoc
// @Summary Start a checkout for a plan
// @Tags Subscription
// @Accept json
// @Produce json
// @Param payload body service.InitiatePaymentRequest true "Identity and plan"
// @Success 200 {object} response.Envelope
// @Router /subscription/initiate [post]
func (h *SubscriptionHandler) Initiate(c *gin.Context) {
	var req service.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	initiation, err := h.service.Initiate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, initiation, nil)
}

// Plans godoc
// @Summary List purchasable plans
// @Tags Subscription
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /subscription/plans [get]
func (h *SubscriptionHandler) Plans(c *gin.Context) {
	plans, err := h.service.Plans(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plans, nil)
}
