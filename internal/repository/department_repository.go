package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/med-a-api/internal/models"
)

// DepartmentRepository manages persistence for departments.
type DepartmentRepository struct {
	db *sqlx.DB
}

// NewDepartmentRepository constructs a department repository.
func NewDepartmentRepository(db *sqlx.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// List returns all departments ordered by creation time.
func (r *DepartmentRepository) List(ctx context.Context) ([]models.Department, error) {
	const query = `SELECT id, name, created_at FROM departments ORDER BY created_at DESC`
	var departments []models.Department
	if err := r.db.SelectContext(ctx, &departments, query); err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return departments, nil
}

// FindByID returns a department record by ID.
func (r *DepartmentRepository) FindByID(ctx context.Context, id int) (*models.Department, error) {
	const query = `SELECT id, name, created_at FROM departments WHERE id = $1`
	var department models.Department
	if err := r.db.GetContext(ctx, &department, query, id); err != nil {
		return nil, err
	}
	return &department, nil
}

// Create persists a department and fills in its generated fields.
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	const query = `INSERT INTO departments (name) VALUES ($1) RETURNING id, created_at`
	if err := r.db.QueryRowxContext(ctx, query, department.Name).
		Scan(&department.ID, &department.CreatedAt); err != nil {
		return fmt.Errorf("create department: %w", err)
	}
	return nil
}

// Delete removes a department record.
func (r *DepartmentRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM departments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete department: %w", err)
	}
	return nil
}

// CountCourses returns how many courses belong to the department.
func (r *DepartmentRepository) CountCourses(ctx context.Context, departmentID int) (int, error) {
	const query = `SELECT COUNT(*) FROM courses WHERE department_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, departmentID); err != nil {
		return 0, fmt.Errorf("count department courses: %w", err)
	}
	return count, nil
}
