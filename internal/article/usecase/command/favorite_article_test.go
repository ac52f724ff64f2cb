package command_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandamarket/api/internal/article/domain"
	"github.com/pandamarket/api/internal/article/repository"
	"github.com/pandamarket/api/internal/article/usecase/command"
	"github.com/pandamarket/api/internal/favorite/inmemory"
	"github.com/pandamarket/api/pkg/apperror"
)

func TestLikeUnlikeArticle(t *testing.T) {
	repo := repository.NewMemoryArticleRepository()
	store := inmemory.New(repo)
	like := command.NewLikeArticleHandler(repo, store, nil)
	unlike := command.NewUnlikeArticleHandler(repo, store, nil)
	ctx := context.Background()

	article := &domain.Article{OwnerID: 1, Title: "hello"}
	require.NoError(t, repo.Create(ctx, article))

	result, err := like.Handle(ctx, command.LikeArticleCommand{ArticleID: article.ID, UserID: 42})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.FavoriteCount)
	assert.True(t, result.IsFavorite)

	_, err = like.Handle(ctx, command.LikeArticleCommand{ArticleID: article.ID, UserID: 42})
	assert.ErrorIs(t, err, apperror.ErrAlreadyFavorited)

	result, err = unlike.Handle(ctx, command.UnlikeArticleCommand{ArticleID: article.ID, UserID: 42})
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.FavoriteCount)
	assert.False(t, result.IsFavorite)

	_, err = unlike.Handle(ctx, command.UnlikeArticleCommand{ArticleID: article.ID, UserID: 42})
	assert.ErrorIs(t, err, apperror.ErrNotFavorited)
}

func TestUpdateArticleOwnerOnly(t *testing.T) {
	repo := repository.NewMemoryArticleRepository()
	handler := command.NewUpdateArticleHandler(repo)
	ctx := context.Background()

	article := &domain.Article{OwnerID: 1, Title: "hello", Content: "world"}
	require.NoError(t, repo.Create(ctx, article))

	title := "hijacked"
	_, err := handler.Handle(ctx, command.UpdateArticleCommand{ID: article.ID, UserID: 2, Title: &title})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	title = "updated"
	updated, err := handler.Handle(ctx, command.UpdateArticleCommand{ID: article.ID, UserID: 1, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "updated", updated.Title)
	assert.Equal(t, "world", updated.Content)
}
