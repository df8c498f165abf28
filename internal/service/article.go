package service

import (
	"context"
	"strconv"

	"github.com/prolixy/prolixy/internal/apperr"
	"github.com/prolixy/prolixy/internal/models"
	"github.com/prolixy/prolixy/internal/storage"
)

const (
	defaultArticleLimit = 20
	maxArticleLimit     = 100
)

// ArticleService serves read-only article listings.
type ArticleService struct {
	store storage.Store
}

func NewArticleService(store storage.Store) *ArticleService {
	return &ArticleService{store: store}
}

// GetLatest lists the most recently discovered articles. The limit parameter
// is best-effort: anything absent, non-integer, non-positive or above 100
// falls back to the default of 20 rather than rejecting the request.
func (s *ArticleService) GetLatest(ctx context.Context, limitParam string) ([]*models.Article, error) {
	limit := defaultArticleLimit
	if parsed, err := strconv.Atoi(limitParam); err == nil && parsed > 0 && parsed <= maxArticleLimit {
		limit = parsed
	}

	articles, err := s.store.ListLatestArticles(ctx, limit)
	if err != nil {
		return nil, apperr.NewStorage("failed to list articles", err)
	}
	return articles, nil
}
