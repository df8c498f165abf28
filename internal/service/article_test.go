package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/prolixy/prolixy/internal/models"
	"github.com/prolixy/prolixy/internal/storage"
)

func uuidNew(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

func seedArticles(t *testing.T, store storage.Store, count int) {
	t.Helper()

	base := time.Now().Add(-time.Duration(count) * time.Minute)
	for i := 0; i < count; i++ {
		article := models.NewArticle("title", "https://x/"+uuid.NewString(), nil)
		article.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, store.UpsertArticle(context.Background(), article))
	}
}

func TestGetLatestLimitFallbacks(t *testing.T) {
	store := newTestStore(t)
	svc := NewArticleService(store)
	seedArticles(t, store, 25)

	tests := []struct {
		name       string
		limitParam string
		want       int
	}{
		{"absent", "", 20},
		{"non-integer", "abc", 20},
		{"negative", "-5", 20},
		{"zero", "0", 20},
		{"above maximum", "101", 20},
		{"valid", "50", 25},
		{"small", "3", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			articles, err := svc.GetLatest(context.Background(), tt.limitParam)
			require.NoError(t, err)
			require.Len(t, articles, tt.want)
		})
	}
}

func TestGetLatestIsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	svc := NewArticleService(store)
	ctx := context.Background()

	old := models.NewArticle("old", "https://x/old", nil)
	old.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, store.UpsertArticle(ctx, old))

	fresh := models.NewArticle("fresh", "https://x/fresh", nil)
	require.NoError(t, store.UpsertArticle(ctx, fresh))

	articles, err := svc.GetLatest(ctx, "")
	require.NoError(t, err)
	require.Len(t, articles, 2)
	require.Equal(t, "fresh", articles[0].Title)
	require.Equal(t, "old", articles[1].Title)
}
