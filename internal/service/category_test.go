package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prolixy/prolixy/internal/apperr"
	"github.com/prolixy/prolixy/internal/storage"
)

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

func TestCreateNormalizesAndRoundTrips(t *testing.T) {
	store := newTestStore(t)
	svc := NewCategoryService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, "  News  ")
	require.NoError(t, err)
	require.Equal(t, "News", created.Name)

	// Case-insensitive lookup round-trips
	got, err := store.GetCategoryByName(ctx, strings.ToUpper(created.Name))
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, created.ID, got.ID)
}

func TestCreateRejectsInvalidNames(t *testing.T) {
	store := newTestStore(t)
	svc := NewCategoryService(store)
	ctx := context.Background()

	tests := []struct {
		name    string
		rawName string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"over 120 characters", strings.Repeat("a", 121)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.rawName)

			var validationErr *apperr.ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestCreateAcceptsNameAtLengthLimit(t *testing.T) {
	store := newTestStore(t)
	svc := NewCategoryService(store)

	created, err := svc.Create(context.Background(), strings.Repeat("a", 120))
	require.NoError(t, err)
	require.Len(t, created.Name, 120)
}

func TestCreateConflictsOnCaseInsensitiveDuplicate(t *testing.T) {
	store := newTestStore(t)
	svc := NewCategoryService(store)
	ctx := context.Background()

	_, err := svc.Create(ctx, "News")
	require.NoError(t, err)

	// Trailing space normalizes away; only case differs
	_, err = svc.Create(ctx, "news ")

	var conflictErr *apperr.ConflictError
	require.ErrorAs(t, err, &conflictErr)
}

func TestUpdateAllowsSelfRename(t *testing.T) {
	store := newTestStore(t)
	svc := NewCategoryService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Tech")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, "TECH")
	require.NoError(t, err)
	require.Equal(t, "TECH", updated.Name)
	require.Equal(t, created.ID, updated.ID)
}

func TestUpdateConflictsWithOtherCategory(t *testing.T) {
	store := newTestStore(t)
	svc := NewCategoryService(store)
	ctx := context.Background()

	_, err := svc.Create(ctx, "News")
	require.NoError(t, err)
	other, err := svc.Create(ctx, "Tech")
	require.NoError(t, err)

	_, err = svc.Update(ctx, other.ID, "nEwS")

	var conflictErr *apperr.ConflictError
	require.ErrorAs(t, err, &conflictErr)
}

func TestUpdateUnknownCategory(t *testing.T) {
	store := newTestStore(t)
	svc := NewCategoryService(store)

	_, err := svc.Update(context.Background(), uuidNew(t), "Anything")

	var notFoundErr *apperr.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestDeleteReturnsIDOnceThenNotFound(t *testing.T) {
	store := newTestStore(t)
	svc := NewCategoryService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, "News")
	require.NoError(t, err)

	deletedID, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, deletedID)

	_, err = svc.Delete(ctx, created.ID)

	var notFoundErr *apperr.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestGetByIDUnknownCategory(t *testing.T) {
	store := newTestStore(t)
	svc := NewCategoryService(store)

	_, err := svc.GetByID(context.Background(), uuidNew(t))

	var notFoundErr *apperr.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestListAllOrderedByName(t *testing.T) {
	store := newTestStore(t)
	svc := NewCategoryService(store)
	ctx := context.Background()

	for _, name := range []string{"World", "Business"} {
		_, err := svc.Create(ctx, name)
		require.NoError(t, err)
	}

	categories, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	require.Equal(t, "Business", categories[0].Name)
	require.Equal(t, "World", categories[1].Name)
}
