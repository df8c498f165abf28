package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/prolixy/prolixy/internal/models"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS categories (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_lower ON categories (LOWER(name))`,
		`CREATE TABLE IF NOT EXISTS articles (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            source_url TEXT UNIQUE NOT NULL,
            summary TEXT,
            posted_at DATETIME,
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles(created_at)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}

	return nil
}

func isSQLiteUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

func (s *SQLiteStore) CreateCategory(ctx context.Context, category *models.Category) error {
	query := `
        INSERT INTO categories (id, name, created_at, updated_at)
        VALUES (?, ?, ?, ?)
    `

	_, err := s.db.ExecContext(ctx, query,
		category.ID.String(),
		category.Name,
		category.CreatedAt,
		category.UpdatedAt,
	)

	if isSQLiteUniqueViolation(err) {
		return ErrDuplicateName
	}

	return err
}

func (s *SQLiteStore) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	query := `
        SELECT id, name, created_at, updated_at
        FROM categories
        WHERE id = ?
    `

	return s.scanCategory(s.db.QueryRowContext(ctx, query, id.String()))
}

func (s *SQLiteStore) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	query := `
        SELECT id, name, created_at, updated_at
        FROM categories
        WHERE LOWER(name) = LOWER(?)
    `

	return s.scanCategory(s.db.QueryRowContext(ctx, query, name))
}

func (s *SQLiteStore) scanCategory(row *sql.Row) (*models.Category, error) {
	category := &models.Category{}
	err := row.Scan(
		&category.ID,
		&category.Name,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return category, nil
}

func (s *SQLiteStore) ListCategories(ctx context.Context) ([]*models.Category, error) {
	query := `
        SELECT id, name, created_at, updated_at
        FROM categories
        ORDER BY name
    `

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.CreatedAt,
			&category.UpdatedAt,
		)

		if err != nil {
			return nil, err
		}

		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func (s *SQLiteStore) UpdateCategoryName(ctx context.Context, id uuid.UUID, name string, updatedAt time.Time) (bool, error) {
	query := `
        UPDATE categories
        SET name = ?, updated_at = ?
        WHERE id = ?
    `

	result, err := s.db.ExecContext(ctx, query, name, updatedAt, id.String())
	if isSQLiteUniqueViolation(err) {
		return false, ErrDuplicateName
	}
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (s *SQLiteStore) DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `DELETE FROM categories WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, id.String())
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (s *SQLiteStore) UpsertArticle(ctx context.Context, article *models.Article) error {
	query := `
        INSERT INTO articles (id, title, source_url, summary, posted_at, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(source_url) DO UPDATE SET
            title = excluded.title,
            summary = excluded.summary,
            updated_at = excluded.updated_at
    `

	_, err := s.db.ExecContext(ctx, query,
		article.ID.String(),
		article.Title,
		article.SourceURL,
		article.Summary,
		article.PostedAt,
		article.CreatedAt,
		article.UpdatedAt,
	)

	return err
}

func (s *SQLiteStore) ListLatestArticles(ctx context.Context, limit int) ([]*models.Article, error) {
	query := `
        SELECT id, title, source_url, summary, posted_at, created_at, updated_at
        FROM articles
        ORDER BY created_at DESC
        LIMIT ?
    `

	return s.queryArticles(ctx, query, limit)
}

func (s *SQLiteStore) ListUnpublishedArticles(ctx context.Context, limit int) ([]*models.Article, error) {
	query := `
        SELECT id, title, source_url, summary, posted_at, created_at, updated_at
        FROM articles
        WHERE posted_at IS NULL
        ORDER BY created_at ASC
        LIMIT ?
    `

	return s.queryArticles(ctx, query, limit)
}

func (s *SQLiteStore) MarkArticlePublished(ctx context.Context, id uuid.UUID, postedAt time.Time) (bool, error) {
	query := `
        UPDATE articles
        SET posted_at = ?, updated_at = ?
        WHERE id = ? AND posted_at IS NULL
    `

	result, err := s.db.ExecContext(ctx, query, postedAt, postedAt, id.String())
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (s *SQLiteStore) queryArticles(ctx context.Context, query string, args ...interface{}) ([]*models.Article, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		article := &models.Article{}
		err := rows.Scan(
			&article.ID,
			&article.Title,
			&article.SourceURL,
			&article.Summary,
			&article.PostedAt,
			&article.CreatedAt,
			&article.UpdatedAt,
		)

		if err != nil {
			return nil, err
		}

		articles = append(articles, article)
	}

	return articles, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
