package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/med-a-api/internal/models"
)

func TestDepartmentRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDepartmentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "created_at"}).
		AddRow(1, "Clinical Medicine", now).
		AddRow(2, "Nursing", now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, created_at FROM departments ORDER BY created_at DESC")).
		WillReturnRows(rows)

	departments, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, departments, 2)
	assert.Equal(t, "Clinical Medicine", departments[0].Name)
}

func TestDepartmentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDepartmentRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO departments (name) VALUES ($1) RETURNING id, created_at")).
		WithArgs("Pharmacy").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(3, now))

	department := &models.Department{Name: "Pharmacy"}
	require.NoError(t, repo.Create(context.Background(), department))
	assert.Equal(t, 3, department.ID)
}

func TestDepartmentRepositoryCountCourses(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDepartmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM courses WHERE department_id = $1")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.CountCourses(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}
