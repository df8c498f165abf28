package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prolixy/prolixy/internal/models"
)

// ErrDuplicateName is returned when a category insert or rename trips the
// case-insensitive unique index on name. The taxonomy service pre-checks
// uniqueness for a friendly message; this sentinel is the backstop for the
// race between check and write.
var ErrDuplicateName = errors.New("category name already exists")

type Store interface {
	Initialize() error
	Close() error

	// Category operations
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	UpdateCategoryName(ctx context.Context, id uuid.UUID, name string, updatedAt time.Time) (bool, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error)

	// Article operations
	UpsertArticle(ctx context.Context, article *models.Article) error
	ListLatestArticles(ctx context.Context, limit int) ([]*models.Article, error)
	ListUnpublishedArticles(ctx context.Context, limit int) ([]*models.Article, error)
	MarkArticlePublished(ctx context.Context, id uuid.UUID, postedAt time.Time) (bool, error)
}
