package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/med-a-api/internal/models"
	"github.com/noah-isme/med-a-api/internal/service"
	appErrors "github.com/noah-isme/med-a-api/pkg/errors"
	"github.com/noah-isme/med-a-api/pkg/response"
)

type contentCatalog interface {
	List(ctx context.Context, filter models.ContentFilter) ([]models.ContentResponse, *models.Pagination, error)
	Get(ctx context.Context, id int) (*models.ContentResponse, error)
	Create(ctx context.Context, req service.CreateContentRequest) (*models.ContentResponse, error)
	Delete(ctx context.Context, id int) error
}

type accessResolver interface {
	Resolve(ctx context.Context, contentID int, identity models.RequesterIdentity, password string) (*models.AccessResult, error)
}

// ContentHandler exposes catalog and verification endpoints.
type ContentHandler struct {
	content contentCatalog
	access  accessResolver
}

// NewContentHandler constructs a content handler.
func NewContentHandler(content contentCatalog, access accessResolver) *ContentHandler {
	return &ContentHandler{content: content, access: access}
}

// List godoc
// @Summary List content items (redacted)
// @Tags Content
// @Produce json
// @Param classId query int false "Filter by class"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /content [get]
func (h *ContentHandler) List(c *gin.Context) {
	var filter models.ContentFilter
	if classID, err := strconv.Atoi(c.Query("classId")); err == nil {
		filter.ClassID = classID
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filter.PageSize = size
	}

	items, pagination, err := h.content.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get one content item (redacted)
// @Tags Content
// @Produce json
// @Param id path int true "Content ID"
// @Success 200 {object} response.Envelope
// @Router /content/{id} [get]
func (h *ContentHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid content id"))
		return
	}

	item, err := h.content.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Create content item
// @Tags Content
// @Accept json
// @Produce json
// @Param payload body service.CreateContentRequest true "Content payload"
// @Success 201 {object} response.Envelope
// @Router /content [post]
func (h *ContentHandler) Create(c *gin.Context) {
	var req service.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	item, err := h.content.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Delete godoc
// @Summary Delete content item
// @Tags Content
// @Produce json
// @Param id path int true "Content ID"
// @Success 204
// @Router /content/{id} [delete]
func (h *ContentHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid content id"))
		return
	}
	if err := h.content.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// VerifyRequest is the verification payload. Identity travels with
// every verify call because the subscription gate is re-run on each
// disclosure.
type VerifyRequest struct {
	Email    string `json:"email" binding:"required,email"`
	DeviceID string `json:"deviceId" binding:"required"`
	Password string `json:"password"`
}

// VerifyResponse is returned on a granted verification.
type VerifyResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
}

// PaymentRequiredResponse carries the checkout URL so the client can
// start payment; it rides on a 402 status, not an error envelope.
type PaymentRequiredResponse struct {
	Success     bool   `json:"success"`
	Kind        string `json:"kind"`
	CheckoutURL string `json:"checkoutUrl,omitempty"`
}

// Verify godoc
// @Summary Verify access to a content item
// @Tags Content
// @Accept json
// @Produce json
// @Param id path int true "Content ID"
// @Param payload body VerifyRequest true "Identity and password"
// @Success 200 {object} response.Envelope
// @Router /content/{id}/verify [post]
func (h *ContentHandler) Verify(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid content id"))
		return
	}

	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	identity := models.RequesterIdentity{Email: req.Email, DeviceID: req.DeviceID}
	result, err := h.access.Resolve(c.Request.Context(), id, identity, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	switch result.Kind {
	case models.AccessGranted:
		response.JSON(c, http.StatusOK, VerifyResponse{Success: true, URL: result.URL}, nil)
	case models.AccessPaymentRequired:
		response.JSON(c, http.StatusPaymentRequired, PaymentRequiredResponse{
			Success:     false,
			Kind:        string(models.AccessPaymentRequired),
			CheckoutURL: result.CheckoutURL,
		}, nil)
	case models.AccessAccountDisabled:
		response.Error(c, appErrors.ErrAccountDisabled)
	default:
		response.Error(c, appErrors.ErrInvalidPassword)
	}
}
