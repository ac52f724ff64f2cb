package query_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandamarket/api/internal/comment/domain"
	"github.com/pandamarket/api/internal/comment/repository"
	"github.com/pandamarket/api/internal/comment/usecase/query"
)

func TestListCommentsCursorPagination(t *testing.T) {
	repo := repository.NewMemoryCommentRepository()
	handler := query.NewListCommentsHandler(repo)
	ctx := context.Background()

	productID := uint(1)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, &domain.Comment{
			OwnerID:   1,
			ProductID: &productID,
			Content:   "comment",
		}))
	}

	// First page, newest first
	page, err := handler.Handle(ctx, query.ListCommentsQuery{ProductID: &productID, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.List, 2)
	assert.Equal(t, uint(5), page.List[0].ID)
	assert.Equal(t, uint(4), page.List[1].ID)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, uint(4), *page.NextCursor)

	// Second page continues below the cursor
	page, err = handler.Handle(ctx, query.ListCommentsQuery{
		ProductID: &productID,
		Cursor:    *page.NextCursor,
		Limit:     2,
	})
	require.NoError(t, err)
	require.Len(t, page.List, 2)
	assert.Equal(t, uint(3), page.List[0].ID)
	assert.Equal(t, uint(2), page.List[1].ID)

	// Final partial page carries no cursor
	page, err = handler.Handle(ctx, query.ListCommentsQuery{
		ProductID: &productID,
		Cursor:    *page.NextCursor,
		Limit:     2,
	})
	require.NoError(t, err)
	require.Len(t, page.List, 1)
	assert.Equal(t, uint(1), page.List[0].ID)
	assert.Nil(t, page.NextCursor)
}

func TestListCommentsScopedToParent(t *testing.T) {
	repo := repository.NewMemoryCommentRepository()
	handler := query.NewListCommentsHandler(repo)
	ctx := context.Background()

	productID := uint(1)
	articleID := uint(1)
	require.NoError(t, repo.Create(ctx, &domain.Comment{OwnerID: 1, ProductID: &productID, Content: "p"}))
	require.NoError(t, repo.Create(ctx, &domain.Comment{OwnerID: 1, ArticleID: &articleID, Content: "a"}))

	page, err := handler.Handle(ctx, query.ListCommentsQuery{ProductID: &productID})
	require.NoError(t, err)
	require.Len(t, page.List, 1)
	assert.Equal(t, "p", page.List[0].Content)

	page, err = handler.Handle(ctx, query.ListCommentsQuery{ArticleID: &articleID})
	require.NoError(t, err)
	require.Len(t, page.List, 1)
	assert.Equal(t, "a", page.List[0].Content)
}

func TestListCommentsEmptyPage(t *testing.T) {
	repo := repository.NewMemoryCommentRepository()
	handler := query.NewListCommentsHandler(repo)

	productID := uint(1)
	page, err := handler.Handle(context.Background(), query.ListCommentsQuery{ProductID: &productID})
	require.NoError(t, err)
	assert.NotNil(t, page.List)
	assert.Empty(t, page.List)
	assert.Nil(t, page.NextCursor)
}
