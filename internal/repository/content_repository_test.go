package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/med-a-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	cleanup := func() {
		_ = sqlxDB.Close()
		db.Close()
	}
	return sqlxDB, mock, cleanup
}

func contentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "class_id", "title", "description", "type", "url", "is_locked", "password", "created_at"})
}

func TestContentRepositoryListFiltersByClass(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewContentRepository(db)

	now := time.Now()
	rows := contentRows().
		AddRow(1, 10, "Anatomy Notes", nil, "notes", "https://cdn.example.com/anatomy.pdf", false, nil, now).
		AddRow(2, 10, "FQE Paper", nil, "fqe", "https://cdn.example.com/fqe.pdf", true, sql.NullString{String: "s3cret", Valid: true}, now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, class_id, title, description, type, url, is_locked, password, created_at FROM content WHERE 1=1 AND class_id = $1 ORDER BY created_at DESC LIMIT 50 OFFSET 0")).
		WithArgs(10).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM content WHERE 1=1 AND class_id = $1")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	items, total, err := repo.List(context.Background(), models.ContentFilter{ClassID: 10})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 2, total)
	assert.True(t, items[1].IsLocked)
	require.NotNil(t, items[1].Password)
	assert.Equal(t, "s3cret", *items[1].Password)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepositoryListPaginates(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewContentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("LIMIT 25 OFFSET 25")).
		WillReturnRows(contentRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, _, err := repo.List(context.Background(), models.ContentFilter{Page: 2, PageSize: 25})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewContentRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, class_id, title, description, type, url, is_locked, password, created_at FROM content WHERE id = $1")).
		WithArgs(2).
		WillReturnRows(contentRows().AddRow(2, 10, "FQE Paper", nil, "fqe", "https://cdn.example.com/fqe.pdf", true, sql.NullString{String: "s3cret", Valid: true}, now))

	item, err := repo.FindByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "FQE Paper", item.Title)
	assert.True(t, item.IsLocked)
}

func TestContentRepositoryFindByIDNoRows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewContentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WithArgs(404).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestContentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewContentRepository(db)

	now := time.Now()
	password := "s3cret"
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO content (class_id, title, description, type, url, is_locked, password)")).
		WithArgs(10, "FQE Paper", nil, "fqe", "https://cdn.example.com/fqe.pdf", true, &password).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, now))

	item := &models.ContentItem{
		ClassID:  10,
		Title:    "FQE Paper",
		Type:     models.ContentTypeFQE,
		URL:      "https://cdn.example.com/fqe.pdf",
		IsLocked: true,
		Password: &password,
	}
	require.NoError(t, repo.Create(context.Background(), item))
	assert.Equal(t, 7, item.ID)
	assert.Equal(t, now, item.CreatedAt)
}

func TestContentRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewContentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM content WHERE id = $1")).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 7))
	require.NoError(t, mock.ExpectationsWereMet())
}
