package command_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandamarket/api/internal/favorite/inmemory"
	"github.com/pandamarket/api/internal/product/domain"
	"github.com/pandamarket/api/internal/product/repository"
	"github.com/pandamarket/api/internal/product/usecase/command"
	"github.com/pandamarket/api/pkg/apperror"
)

func newLikeFixture(t *testing.T) (*repository.MemoryProductRepository, *inmemory.Store, *domain.Product) {
	t.Helper()
	repo := repository.NewMemoryProductRepository()
	store := inmemory.New(repo)

	product := &domain.Product{OwnerID: 1, Name: "desk", Price: 50000}
	require.NoError(t, repo.Create(context.Background(), product))
	return repo, store, product
}

func TestLikeProductReturnsUpdatedProduct(t *testing.T) {
	repo, store, product := newLikeFixture(t)
	handler := command.NewLikeProductHandler(repo, store, nil)

	result, err := handler.Handle(context.Background(), command.LikeProductCommand{
		ProductID: product.ID,
		UserID:    42,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.FavoriteCount)
	assert.True(t, result.IsFavorite)
}

func TestLikeProductTwiceConflicts(t *testing.T) {
	repo, store, product := newLikeFixture(t)
	handler := command.NewLikeProductHandler(repo, store, nil)
	ctx := context.Background()

	_, err := handler.Handle(ctx, command.LikeProductCommand{ProductID: product.ID, UserID: 42})
	require.NoError(t, err)

	_, err = handler.Handle(ctx, command.LikeProductCommand{ProductID: product.ID, UserID: 42})
	assert.ErrorIs(t, err, apperror.ErrAlreadyFavorited)

	// Counter not double-incremented
	current, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), current.FavoriteCount)
}

func TestLikeMissingProduct(t *testing.T) {
	repo, store, _ := newLikeFixture(t)
	handler := command.NewLikeProductHandler(repo, store, nil)

	_, err := handler.Handle(context.Background(), command.LikeProductCommand{ProductID: 999, UserID: 42})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUnlikeRestoresCounter(t *testing.T) {
	repo, store, product := newLikeFixture(t)
	like := command.NewLikeProductHandler(repo, store, nil)
	unlike := command.NewUnlikeProductHandler(repo, store, nil)
	ctx := context.Background()

	_, err := like.Handle(ctx, command.LikeProductCommand{ProductID: product.ID, UserID: 42})
	require.NoError(t, err)

	result, err := unlike.Handle(ctx, command.UnlikeProductCommand{ProductID: product.ID, UserID: 42})
	require.NoError(t, err)

	assert.Equal(t, int64(0), result.FavoriteCount)
	assert.False(t, result.IsFavorite)
}

func TestUnlikeWithoutLikeConflicts(t *testing.T) {
	repo, store, product := newLikeFixture(t)
	handler := command.NewUnlikeProductHandler(repo, store, nil)

	_, err := handler.Handle(context.Background(), command.UnlikeProductCommand{ProductID: product.ID, UserID: 42})
	assert.ErrorIs(t, err, apperror.ErrNotFavorited)
}

func TestTwoUsersLikeSameProduct(t *testing.T) {
	repo, store, product := newLikeFixture(t)
	like := command.NewLikeProductHandler(repo, store, nil)
	unlike := command.NewUnlikeProductHandler(repo, store, nil)
	ctx := context.Background()

	_, err := like.Handle(ctx, command.LikeProductCommand{ProductID: product.ID, UserID: 1})
	require.NoError(t, err)
	result, err := like.Handle(ctx, command.LikeProductCommand{ProductID: product.ID, UserID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.FavoriteCount)

	result, err = unlike.Handle(ctx, command.UnlikeProductCommand{ProductID: product.ID, UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.FavoriteCount)

	// The second user's favorite is untouched
	liked, err := store.IsFavorited(ctx, favoriteTarget(product.ID), 2)
	require.NoError(t, err)
	assert.True(t, liked)
}
