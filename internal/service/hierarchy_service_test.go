package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/med-a-api/internal/models"
	appErrors "github.com/noah-isme/med-a-api/pkg/errors"
)

type departmentRepoStub struct {
	departments []models.Department
	byID        map[int]*models.Department
	courseCount int
	countErr    error
	deleted     []int
}

func (s *departmentRepoStub) List(ctx context.Context) ([]models.Department, error) {
	return s.departments, nil
}

func (s *departmentRepoStub) FindByID(ctx context.Context, id int) (*models.Department, error) {
	if d, ok := s.byID[id]; ok {
		return d, nil
	}
	return nil, sql.ErrNoRows
}

func (s *departmentRepoStub) Create(ctx context.Context, department *models.Department) error {
	department.ID = len(s.departments) + 1
	s.departments = append(s.departments, *department)
	return nil
}

func (s *departmentRepoStub) Delete(ctx context.Context, id int) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *departmentRepoStub) CountCourses(ctx context.Context, departmentID int) (int, error) {
	return s.courseCount, s.countErr
}

type classRepoStub struct {
	byID         map[int]*models.Class
	contentCount int
	deleted      []int
}

func (s *classRepoStub) List(ctx context.Context, courseID int) ([]models.Class, error) {
	return nil, nil
}

func (s *classRepoStub) FindByID(ctx context.Context, id int) (*models.Class, error) {
	if c, ok := s.byID[id]; ok {
		return c, nil
	}
	return nil, sql.ErrNoRows
}

func (s *classRepoStub) Create(ctx context.Context, class *models.Class) error {
	class.ID = 1
	return nil
}

func (s *classRepoStub) Delete(ctx context.Context, id int) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *classRepoStub) CountContent(ctx context.Context, classID int) (int, error) {
	return s.contentCount, nil
}

type courseReaderStub struct {
	courses map[int]*models.Course
}

func (s courseReaderStub) FindByID(ctx context.Context, id int) (*models.Course, error) {
	if c, ok := s.courses[id]; ok {
		return c, nil
	}
	return nil, sql.ErrNoRows
}

func TestDepartmentServiceCreateRequiresName(t *testing.T) {
	service := NewDepartmentService(&departmentRepoStub{}, nil, zap.NewNop())

	_, err := service.Create(context.Background(), CreateDepartmentRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestDepartmentServiceDeleteWithCourses(t *testing.T) {
	repo := &departmentRepoStub{
		byID:        map[int]*models.Department{1: {ID: 1, Name: "Clinical Medicine"}},
		courseCount: 3,
	}
	service := NewDepartmentService(repo, nil, zap.NewNop())

	err := service.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.deleted)
}

func TestDepartmentServiceDeleteEmpty(t *testing.T) {
	repo := &departmentRepoStub{byID: map[int]*models.Department{1: {ID: 1, Name: "Nursing"}}}
	service := NewDepartmentService(repo, nil, zap.NewNop())

	require.NoError(t, service.Delete(context.Background(), 1))
	assert.Equal(t, []int{1}, repo.deleted)
}

func TestDepartmentServiceDeleteNotFound(t *testing.T) {
	service := NewDepartmentService(&departmentRepoStub{}, nil, zap.NewNop())

	err := service.Delete(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestClassServiceCreateUnknownCourse(t *testing.T) {
	service := NewClassService(&classRepoStub{}, courseReaderStub{}, nil, zap.NewNop())

	_, err := service.Create(context.Background(), CreateClassRequest{CourseID: 9, Name: "Year 1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestClassServiceCreate(t *testing.T) {
	courses := courseReaderStub{courses: map[int]*models.Course{5: {ID: 5, Name: "Diploma in Clinical Medicine"}}}
	service := NewClassService(&classRepoStub{}, courses, nil, zap.NewNop())

	class, err := service.Create(context.Background(), CreateClassRequest{CourseID: 5, Name: "Year 1"})
	require.NoError(t, err)
	assert.Equal(t, 5, class.CourseID)
	assert.NotZero(t, class.ID)
}

func TestClassServiceDeleteWithContent(t *testing.T) {
	repo := &classRepoStub{
		byID:         map[int]*models.Class{1: {ID: 1, Name: "Year 1"}},
		contentCount: 2,
	}
	service := NewClassService(repo, courseReaderStub{}, nil, zap.NewNop())

	err := service.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.deleted)
}
