package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/prolixy/prolixy/internal/models"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS categories (
            id UUID PRIMARY KEY,
            name VARCHAR(120) NOT NULL,
            created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_lower ON categories (LOWER(name))`,
		`CREATE TABLE IF NOT EXISTS articles (
            id UUID PRIMARY KEY,
            title TEXT NOT NULL,
            source_url VARCHAR(2048) UNIQUE NOT NULL,
            summary TEXT,
            posted_at TIMESTAMP,
            created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_posted_at ON articles(posted_at) WHERE posted_at IS NULL`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}

	return nil
}

func isPgUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (s *PostgresStore) CreateCategory(ctx context.Context, category *models.Category) error {
	query := `
        INSERT INTO categories (id, name, created_at, updated_at)
        VALUES ($1, $2, $3, $4)
    `

	_, err := s.db.ExecContext(ctx, query,
		category.ID,
		category.Name,
		category.CreatedAt,
		category.UpdatedAt,
	)

	if isPgUniqueViolation(err) {
		return ErrDuplicateName
	}

	return err
}

func (s *PostgresStore) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	query := `
        SELECT id, name, created_at, updated_at
        FROM categories
        WHERE id = $1
    `

	category := &models.Category{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
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

func (s *PostgresStore) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	query := `
        SELECT id, name, created_at, updated_at
        FROM categories
        WHERE LOWER(name) = LOWER($1)
    `

	category := &models.Category{}
	err := s.db.QueryRowContext(ctx, query, name).Scan(
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

func (s *PostgresStore) ListCategories(ctx context.Context) ([]*models.Category, error) {
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

func (s *PostgresStore) UpdateCategoryName(ctx context.Context, id uuid.UUID, name string, updatedAt time.Time) (bool, error) {
	query := `
        UPDATE categories
        SET name = $2, updated_at = $3
        WHERE id = $1
    `

	result, err := s.db.ExecContext(ctx, query, id, name, updatedAt)
	if isPgUniqueViolation(err) {
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

func (s *PostgresStore) DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `DELETE FROM categories WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (s *PostgresStore) UpsertArticle(ctx context.Context, article *models.Article) error {
	query := `
        INSERT INTO articles (id, title, source_url, summary, posted_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (source_url) DO UPDATE SET
            title = EXCLUDED.title,
            summary = EXCLUDED.summary,
            updated_at = EXCLUDED.updated_at
    `

	_, err := s.db.ExecContext(ctx, query,
		article.ID,
		article.Title,
		article.SourceURL,
		article.Summary,
		article.PostedAt,
		article.CreatedAt,
		article.UpdatedAt,
	)

	return err
}

func (s *PostgresStore) ListLatestArticles(ctx context.Context, limit int) ([]*models.Article, error) {
	query := `
        SELECT id, title, source_url, summary, posted_at, created_at, updated_at
        FROM articles
        ORDER BY created_at DESC
        LIMIT $1
    `

	return s.queryArticles(ctx, query, limit)
}

func (s *PostgresStore) ListUnpublishedArticles(ctx context.Context, limit int) ([]*models.Article, error) {
	query := `
        SELECT id, title, source_url, summary, posted_at, created_at, updated_at
        FROM articles
        WHERE posted_at IS NULL
        ORDER BY created_at ASC
        LIMIT $1
    `

	return s.queryArticles(ctx, query, limit)
}

func (s *PostgresStore) MarkArticlePublished(ctx context.Context, id uuid.UUID, postedAt time.Time) (bool, error) {
	query := `
        UPDATE articles
        SET posted_at = $2, updated_at = $2
        WHERE id = $1 AND posted_at IS NULL
    `

	result, err := s.db.ExecContext(ctx, query, id, postedAt)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (s *PostgresStore) queryArticles(ctx context.Context, query string, args ...interface{}) ([]*models.Article, error) {
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

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
