package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/med-a-api/internal/models"
	appErrors "github.com/noah-isme/med-a-api/pkg/errors"
)

type classRepository interface {
	List(ctx context.Context, courseID int) ([]models.Class, error)
	FindByID(ctx context.Context, id int) (*models.Class, error)
	Create(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id int) error
	CountContent(ctx context.Context, classID int) (int, error)
}

type courseReader interface {
	FindByID(ctx context.Context, id int) (*models.Course, error)
}

// CreateClassRequest captures the creation payload.
type CreateClassRequest struct {
	CourseID int    `json:"courseId" validate:"required,gt=0"`
	Name     string `json:"name" validate:"required"`
}

// ClassService coordinates class operations.
type ClassService struct {
	repo      classRepository
	courses   courseReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs ClassService.
func NewClassService(repo classRepository, courses courseReader, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, courses: courses, validator: validate, logger: logger}
}

// List returns classes, optionally filtered by course.
func (s *ClassService) List(ctx context.Context, courseID int) ([]models.Class, error) {
	classes, err := s.repo.List(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	return classes, nil
}

// Create adds a new class under an existing course.
func (s *ClassService) Create(ctx context.Context, req CreateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}

	if s.courses != nil {
		if _, err := s.courses.FindByID(ctx, req.CourseID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate course")
		}
	}

	class := &models.Class{CourseID: req.CourseID, Name: req.Name}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class")
	}
	return class, nil
}

// Delete removes a class unless content items still reference it.
func (s *ClassService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}

	if count, err := s.repo.CountContent(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check class content")
	} else if count > 0 {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "class has content")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete class")
	}
	return nil
}
