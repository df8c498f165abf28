package poster

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/prolixy/prolixy/internal/models"
	"github.com/prolixy/prolixy/internal/storage"
)

type fakeChannel struct {
	published []string
	failing   map[string]bool
}

func (f *fakeChannel) Publish(_ context.Context, article *models.Article) error {
	if f.failing[article.SourceURL] {
		return errors.New("channel unavailable")
	}
	f.published = append(f.published, article.SourceURL)
	return nil
}

func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, store.Initialize())

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

func seedUnpublished(t *testing.T, store storage.Store, urls ...string) {
	t.Helper()

	base := time.Now().Add(-time.Hour)
	for i, url := range urls {
		article := models.NewArticle("title", url, nil)
		article.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, store.UpsertArticle(context.Background(), article))
	}
}

func TestRunPublishesOldestFirstUpToBatchSize(t *testing.T) {
	store := newTestStore(t)
	seedUnpublished(t, store, "https://x/1", "https://x/2", "https://x/3", "https://x/4", "https://x/5")

	channel := &fakeChannel{}
	report, err := NewPoster(store, channel, 2).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, Report{Attempted: 2, Published: 2}, report)
	require.Equal(t, []string{"https://x/1", "https://x/2"}, channel.published)

	remaining, err := store.ListUnpublishedArticles(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, remaining, 3)
	require.Equal(t, "https://x/3", remaining[0].SourceURL)
}

func TestRunWithNothingToPublish(t *testing.T) {
	store := newTestStore(t)
	seedUnpublished(t, store, "https://x/1")

	channel := &fakeChannel{}
	p := NewPoster(store, channel, 10)

	report, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, Report{Attempted: 1, Published: 1}, report)

	// A second run right after selects zero rows
	report, err = p.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, Report{}, report)
}

func TestRunSkipsFailedDeliveryAndContinues(t *testing.T) {
	store := newTestStore(t)
	seedUnpublished(t, store, "https://x/1", "https://x/2", "https://x/3")

	channel := &fakeChannel{failing: map[string]bool{"https://x/2": true}}
	report, err := NewPoster(store, channel, 10).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, Report{Attempted: 3, Published: 2}, report)

	// The failed item stays unpublished and is retried on the next run
	remaining, err := store.ListUnpublishedArticles(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, "https://x/2", remaining[0].SourceURL)

	channel.failing = nil
	report, err = NewPoster(store, channel, 10).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, Report{Attempted: 1, Published: 1}, report)
}

func TestRunDoesNotDoubleCountConcurrentlyPublished(t *testing.T) {
	store := newTestStore(t)
	seedUnpublished(t, store, "https://x/1")

	articles, err := store.ListUnpublishedArticles(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, articles, 1)

	// Simulate an overlapping run winning the conditional update
	won, err := store.MarkArticlePublished(context.Background(), articles[0].ID, time.Now())
	require.NoError(t, err)
	require.True(t, won)

	published, err := store.MarkArticlePublished(context.Background(), articles[0].ID, time.Now())
	require.NoError(t, err)
	require.False(t, published)
}
