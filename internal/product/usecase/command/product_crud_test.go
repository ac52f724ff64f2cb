package command_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandamarket/api/internal/favorite"
	"github.com/pandamarket/api/internal/product/domain"
	"github.com/pandamarket/api/internal/product/repository"
	"github.com/pandamarket/api/internal/product/usecase/command"
	"github.com/pandamarket/api/pkg/apperror"
)

func favoriteTarget(id uint) favorite.Target {
	return favorite.Target{Type: favorite.TargetProduct, ID: id}
}

func strPtr(s string) *string { return &s }

func TestCreateProductValidation(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	handler := command.NewCreateProductHandler(repo)
	ctx := context.Background()

	_, err := handler.Handle(ctx, command.CreateProductCommand{OwnerID: 1, Name: "", Price: 100})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = handler.Handle(ctx, command.CreateProductCommand{OwnerID: 1, Name: "lamp", Price: -1})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	product, err := handler.Handle(ctx, command.CreateProductCommand{OwnerID: 1, Name: "lamp", Price: 100})
	require.NoError(t, err)
	assert.Equal(t, uint(1), product.OwnerID)
	assert.NotZero(t, product.ID)
}

func TestUpdateProductOwnerOnly(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	handler := command.NewUpdateProductHandler(repo)
	ctx := context.Background()

	product := &domain.Product{OwnerID: 1, Name: "lamp", Price: 100}
	require.NoError(t, repo.Create(ctx, product))

	_, err := handler.Handle(ctx, command.UpdateProductCommand{
		ID:     product.ID,
		UserID: 2,
		Name:   strPtr("stolen"),
	})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	// The product is unchanged after the rejected update
	current, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "lamp", current.Name)
}

func TestUpdateProductPatchesOnlyGivenFields(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	handler := command.NewUpdateProductHandler(repo)
	ctx := context.Background()

	product := &domain.Product{OwnerID: 1, Name: "lamp", Description: "warm light", Price: 100}
	require.NoError(t, repo.Create(ctx, product))

	updated, err := handler.Handle(ctx, command.UpdateProductCommand{
		ID:     product.ID,
		UserID: 1,
		Name:   strPtr("floor lamp"),
	})
	require.NoError(t, err)
	assert.Equal(t, "floor lamp", updated.Name)
	assert.Equal(t, "warm light", updated.Description)
	assert.Equal(t, int64(100), updated.Price)
}

func TestUpdateMissingProduct(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	handler := command.NewUpdateProductHandler(repo)

	_, err := handler.Handle(context.Background(), command.UpdateProductCommand{
		ID:     999,
		UserID: 1,
		Name:   strPtr("ghost"),
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteProductOwnerOnly(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	handler := command.NewDeleteProductHandler(repo)
	ctx := context.Background()

	product := &domain.Product{OwnerID: 1, Name: "lamp", Price: 100}
	require.NoError(t, repo.Create(ctx, product))

	err := handler.Handle(ctx, command.DeleteProductCommand{ID: product.ID, UserID: 2})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	require.NoError(t, handler.Handle(ctx, command.DeleteProductCommand{ID: product.ID, UserID: 1}))

	_, err = repo.FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
