package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/med-a-api/internal/models"
)

// ContentRepository manages persistence for content items. It is pure
// data access: redaction and lock policy live in the service layer.
type ContentRepository struct {
	db *sqlx.DB
}

// NewContentRepository constructs a content repository.
func NewContentRepository(db *sqlx.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

const contentColumns = "id, class_id, title, description, type, url, is_locked, password, created_at"

// List returns content items matching the filter with pagination metadata.
func (r *ContentRepository) List(ctx context.Context, filter models.ContentFilter) ([]models.ContentItem, int, error) {
	base := "FROM content WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.ClassID > 0 {
		conditions = append(conditions, fmt.Sprintf("class_id = $%d", len(args)+1))
		args = append(args, filter.ClassID)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC LIMIT %d OFFSET %d", contentColumns, base, size, offset)
	var items []models.ContentItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list content: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count content: %w", err)
	}
	return items, total, nil
}

// FindByID returns a content item by ID, password included.
func (r *ContentRepository) FindByID(ctx context.Context, id int) (*models.ContentItem, error) {
	query := fmt.Sprintf("SELECT %s FROM content WHERE id = $1", contentColumns)
	var item models.ContentItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create persists a content item and fills in its generated fields.
func (r *ContentRepository) Create(ctx context.Context, item *models.ContentItem) error {
	const query = `INSERT INTO content (class_id, title, description, type, url, is_locked, password)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`
	if err := r.db.QueryRowxContext(ctx, query,
		item.ClassID, item.Title, item.Description, item.Type, item.URL, item.IsLocked, item.Password).
		Scan(&item.ID, &item.CreatedAt); err != nil {
		return fmt.Errorf("create content: %w", err)
	}
	return nil
}

// Delete removes a content item.
func (r *ContentRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM content WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	return nil
}
