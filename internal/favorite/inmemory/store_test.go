package inmemory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandamarket/api/internal/favorite"
	"github.com/pandamarket/api/internal/favorite/inmemory"
	productdomain "github.com/pandamarket/api/internal/product/domain"
	productrepo "github.com/pandamarket/api/internal/product/repository"
	"github.com/pandamarket/api/pkg/apperror"
)

func newFixture(t *testing.T) (*inmemory.Store, *productrepo.MemoryProductRepository, favorite.Target) {
	t.Helper()
	repo := productrepo.NewMemoryProductRepository()
	store := inmemory.New(repo)

	product := &productdomain.Product{OwnerID: 1, Name: "lamp", Price: 1000}
	require.NoError(t, repo.Create(context.Background(), product))

	return store, repo, favorite.Target{Type: favorite.TargetProduct, ID: product.ID}
}

func favoriteCount(t *testing.T, repo *productrepo.MemoryProductRepository, id uint) int64 {
	t.Helper()
	product, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	return product.FavoriteCount
}

func TestLikeIncrementsCounter(t *testing.T) {
	store, repo, target := newFixture(t)
	ctx := context.Background()

	require.NoError(t, store.Like(ctx, target, 42))
	assert.Equal(t, int64(1), favoriteCount(t, repo, target.ID))

	liked, err := store.IsFavorited(ctx, target, 42)
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestDoubleLikeConflictLeavesStateUnchanged(t *testing.T) {
	store, repo, target := newFixture(t)
	ctx := context.Background()

	require.NoError(t, store.Like(ctx, target, 42))
	err := store.Like(ctx, target, 42)
	assert.ErrorIs(t, err, apperror.ErrAlreadyFavorited)
	assert.Equal(t, int64(1), favoriteCount(t, repo, target.ID))
}

func TestUnlikeWithoutLikeConflict(t *testing.T) {
	store, repo, target := newFixture(t)
	ctx := context.Background()

	err := store.Unlike(ctx, target, 42)
	assert.ErrorIs(t, err, apperror.ErrNotFavorited)
	assert.Equal(t, int64(0), favoriteCount(t, repo, target.ID))
}

func TestLikeUnlikeRoundTrip(t *testing.T) {
	store, repo, target := newFixture(t)
	ctx := context.Background()

	require.NoError(t, store.Like(ctx, target, 42))
	require.NoError(t, store.Unlike(ctx, target, 42))

	assert.Equal(t, int64(0), favoriteCount(t, repo, target.ID))

	liked, err := store.IsFavorited(ctx, target, 42)
	require.NoError(t, err)
	assert.False(t, liked)

	// The pair can be liked again after a full round trip
	require.NoError(t, store.Like(ctx, target, 42))
	assert.Equal(t, int64(1), favoriteCount(t, repo, target.ID))
}

func TestTwoUsersLikeIndependently(t *testing.T) {
	store, repo, target := newFixture(t)
	ctx := context.Background()

	require.NoError(t, store.Like(ctx, target, 1))
	require.NoError(t, store.Like(ctx, target, 2))
	assert.Equal(t, int64(2), favoriteCount(t, repo, target.ID))

	require.NoError(t, store.Unlike(ctx, target, 1))
	assert.Equal(t, int64(1), favoriteCount(t, repo, target.ID))

	liked, err := store.IsFavorited(ctx, target, 2)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = store.IsFavorited(ctx, target, 1)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestLikeMissingTarget(t *testing.T) {
	store, _, _ := newFixture(t)
	ctx := context.Background()

	missing := favorite.Target{Type: favorite.TargetProduct, ID: 999}
	err := store.Like(ctx, missing, 42)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	// The failed like left no row behind
	liked, isErr := store.IsFavorited(ctx, missing, 42)
	require.NoError(t, isErr)
	assert.False(t, liked)
}

func TestFavoritedIDsScopedToTypeAndUser(t *testing.T) {
	store, repo, target := newFixture(t)
	ctx := context.Background()

	other := &productdomain.Product{OwnerID: 1, Name: "chair", Price: 500}
	require.NoError(t, repo.Create(ctx, other))

	require.NoError(t, store.Like(ctx, target, 1))
	require.NoError(t, store.Like(ctx, favorite.Target{Type: favorite.TargetProduct, ID: other.ID}, 1))
	require.NoError(t, store.Like(ctx, target, 2))

	ids, err := store.FavoritedIDs(ctx, favorite.TargetProduct, 1)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.True(t, ids[target.ID])
	assert.True(t, ids[other.ID])

	ids, err = store.FavoritedIDs(ctx, favorite.TargetArticle, 1)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
