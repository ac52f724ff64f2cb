package command_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	articledomain "github.com/pandamarket/api/internal/article/domain"
	articlerepo "github.com/pandamarket/api/internal/article/repository"
	"github.com/pandamarket/api/internal/comment/repository"
	"github.com/pandamarket/api/internal/comment/usecase/command"
	productdomain "github.com/pandamarket/api/internal/product/domain"
	productrepo "github.com/pandamarket/api/internal/product/repository"
	"github.com/pandamarket/api/pkg/apperror"
)

type fixture struct {
	comments *repository.MemoryCommentRepository
	products *productrepo.MemoryProductRepository
	articles *articlerepo.MemoryArticleRepository
	handler  *command.CreateCommentHandler
	product  *productdomain.Product
	article  *articledomain.Article
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		comments: repository.NewMemoryCommentRepository(),
		products: productrepo.NewMemoryProductRepository(),
		articles: articlerepo.NewMemoryArticleRepository(),
	}
	f.handler = command.NewCreateCommentHandler(f.comments, f.products, f.articles, nil)

	f.product = &productdomain.Product{OwnerID: 1, Name: "lamp", Price: 100}
	require.NoError(t, f.products.Create(ctx, f.product))

	f.article = &articledomain.Article{OwnerID: 1, Title: "hello"}
	require.NoError(t, f.articles.Create(ctx, f.article))

	return f
}

func uintPtr(v uint) *uint { return &v }

func TestCreateCommentOnProduct(t *testing.T) {
	f := newFixture(t)

	comment, err := f.handler.Handle(context.Background(), command.CreateCommentCommand{
		OwnerID:   42,
		ProductID: &f.product.ID,
		Content:   "is this still available?",
	})
	require.NoError(t, err)

	assert.NotZero(t, comment.ID)
	assert.Equal(t, uint(42), comment.OwnerID)
	require.NotNil(t, comment.ProductID)
	assert.Equal(t, f.product.ID, *comment.ProductID)
	assert.Nil(t, comment.ArticleID)
}

func TestCreateCommentMissingParentResource(t *testing.T) {
	f := newFixture(t)

	_, err := f.handler.Handle(context.Background(), command.CreateCommentCommand{
		OwnerID:   42,
		ProductID: uintPtr(999),
		Content:   "ghost",
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCreateCommentRequiresExactlyOneTarget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.handler.Handle(ctx, command.CreateCommentCommand{OwnerID: 42, Content: "nowhere"})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = f.handler.Handle(ctx, command.CreateCommentCommand{
		OwnerID:   42,
		ProductID: &f.product.ID,
		ArticleID: &f.article.ID,
		Content:   "everywhere",
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCreateReply(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	parent, err := f.handler.Handle(ctx, command.CreateCommentCommand{
		OwnerID:   42,
		ArticleID: &f.article.ID,
		Content:   "first",
	})
	require.NoError(t, err)

	reply, err := f.handler.Handle(ctx, command.CreateCommentCommand{
		OwnerID:   43,
		ArticleID: &f.article.ID,
		ParentID:  &parent.ID,
		Content:   "agreed",
	})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, parent.ID, *reply.ParentID)
}

func TestCreateReplyRejectsCrossResourceParent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	parent, err := f.handler.Handle(ctx, command.CreateCommentCommand{
		OwnerID:   42,
		ProductID: &f.product.ID,
		Content:   "on the product",
	})
	require.NoError(t, err)

	_, err = f.handler.Handle(ctx, command.CreateCommentCommand{
		OwnerID:   43,
		ArticleID: &f.article.ID,
		ParentID:  &parent.ID,
		Content:   "wrong thread",
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCreateReplyMissingParentComment(t *testing.T) {
	f := newFixture(t)

	_, err := f.handler.Handle(context.Background(), command.CreateCommentCommand{
		OwnerID:   42,
		ProductID: &f.product.ID,
		ParentID:  uintPtr(999),
		Content:   "orphan",
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateAndDeleteCommentOwnerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	comment, err := f.handler.Handle(ctx, command.CreateCommentCommand{
		OwnerID:   42,
		ProductID: &f.product.ID,
		Content:   "original",
	})
	require.NoError(t, err)

	update := command.NewUpdateCommentHandler(f.comments)
	_, err = update.Handle(ctx, command.UpdateCommentCommand{ID: comment.ID, UserID: 7, Content: "hijack"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	updated, err := update.Handle(ctx, command.UpdateCommentCommand{ID: comment.ID, UserID: 42, Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	del := command.NewDeleteCommentHandler(f.comments)
	err = del.Handle(ctx, command.DeleteCommentCommand{ID: comment.ID, UserID: 7})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	require.NoError(t, del.Handle(ctx, command.DeleteCommentCommand{ID: comment.ID, UserID: 42}))
	_, err = f.comments.FindByID(ctx, comment.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
