package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/med-a-api/internal/models"
	appErrors "github.com/noah-isme/med-a-api/pkg/errors"
)

type contentRepository interface {
	List(ctx context.Context, filter models.ContentFilter) ([]models.ContentItem, int, error)
	FindByID(ctx context.Context, id int) (*models.ContentItem, error)
	Create(ctx context.Context, item *models.ContentItem) error
	Delete(ctx context.Context, id int) error
}

type classReader interface {
	FindByID(ctx context.Context, id int) (*models.Class, error)
}

// CreateContentRequest captures the creation payload.
type CreateContentRequest struct {
	ClassID     int     `json:"classId" validate:"required,gt=0"`
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	Type        string  `json:"type" validate:"required,oneof=past_paper notes book fqe"`
	URL         string  `json:"url" validate:"required,url"`
	IsLocked    bool    `json:"isLocked"`
	Password    string  `json:"password"`
}

// ContentService owns the redacted catalog. Listing and detail payloads
// never carry a password and never carry the URL of a locked item.
type ContentService struct {
	repo      contentRepository
	classes   classReader
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewContentService constructs ContentService.
func NewContentService(repo contentRepository, classes classReader, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ContentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentService{repo: repo, classes: classes, cache: cache, validator: validate, logger: logger}
}

const contentCachePrefix = "catalog:content:"

func contentCacheKey(filter models.ContentFilter) string {
	return fmt.Sprintf("%s%d:%d:%d", contentCachePrefix, filter.ClassID, filter.Page, filter.PageSize)
}

type cachedContentList struct {
	Items []models.ContentResponse `json:"items"`
	Total int                      `json:"total"`
}

// List returns redacted content items with pagination metadata.
func (s *ContentService) List(ctx context.Context, filter models.ContentFilter) ([]models.ContentResponse, *models.Pagination, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 50
	}
	filter.Page = page
	filter.PageSize = size

	key := contentCacheKey(filter)
	var cached cachedContentList
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached.Items, &models.Pagination{Page: page, PageSize: size, TotalCount: cached.Total}, nil
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list content")
	}

	redacted := make([]models.ContentResponse, 0, len(items))
	for _, item := range items {
		redacted = append(redacted, item.Redact())
	}

	_ = s.cache.Set(ctx, key, cachedContentList{Items: redacted, Total: total}, 0)

	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return redacted, pagination, nil
}

// Get returns one redacted content item.
func (s *ContentService) Get(ctx context.Context, id int) (*models.ContentResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "content not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load content")
	}
	resp := item.Redact()
	return &resp, nil
}

// Create validates the lock/password invariant and persists a new item.
// Locked items require a non-empty password; unlocked items never keep
// one.
func (s *ContentService) Create(ctx context.Context, req CreateContentRequest) (*models.ContentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid content payload")
	}

	password := strings.TrimSpace(req.Password)
	if req.IsLocked && password == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "locked content requires a password")
	}

	if s.classes != nil {
		if _, err := s.classes.FindByID(ctx, req.ClassID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate class")
		}
	}

	item := &models.ContentItem{
		ClassID:     req.ClassID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		URL:         req.URL,
		IsLocked:    req.IsLocked,
	}
	if req.IsLocked {
		item.Password = &password
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create content")
	}

	_ = s.cache.Invalidate(ctx, contentCachePrefix+"*")

	resp := item.Redact()
	return &resp, nil
}

// Delete removes a content item.
func (s *ContentService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "content not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load content")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete content")
	}

	_ = s.cache.Invalidate(ctx, contentCachePrefix+"*")
	return nil
}
