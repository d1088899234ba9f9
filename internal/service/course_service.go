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

type courseRepository interface {
	List(ctx context.Context, departmentID int) ([]models.Course, error)
	FindByID(ctx context.Context, id int) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int) error
	CountClasses(ctx context.Context, courseID int) (int, error)
}

type departmentReader interface {
	FindByID(ctx context.Context, id int) (*models.Department, error)
}

// CreateCourseRequest captures the creation payload.
type CreateCourseRequest struct {
	DepartmentID int    `json:"departmentId" validate:"required,gt=0"`
	Name         string `json:"name" validate:"required"`
}

// CourseService coordinates course operations.
type CourseService struct {
	repo        courseRepository
	departments departmentReader
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewCourseService constructs CourseService.
func NewCourseService(repo courseRepository, departments departmentReader, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, departments: departments, validator: validate, logger: logger}
}

// List returns courses, optionally filtered by department.
func (s *CourseService) List(ctx context.Context, departmentID int) ([]models.Course, error) {
	courses, err := s.repo.List(ctx, departmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, nil
}

// Create adds a new course under an existing department.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	if s.departments != nil {
		if _, err := s.departments.FindByID(ctx, req.DepartmentID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "department not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate department")
		}
	}

	course := &models.Course{DepartmentID: req.DepartmentID, Name: req.Name}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	return course, nil
}

// Delete removes a course unless classes still reference it.
func (s *CourseService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	if count, err := s.repo.CountClasses(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check course classes")
	} else if count > 0 {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "course has classes")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}
	return nil
}
