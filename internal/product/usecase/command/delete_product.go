package command

import (
	"context"

	"github.com/pandamarket/api/internal/product/domain"
	"github.com/pandamarket/api/pkg/apperror"
)

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	ID     uint
	UserID uint
}

// DeleteProductHandler handles owner-gated product deletion
type DeleteProductHandler struct {
	repo domain.ProductRepository
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(repo domain.ProductRepository) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo}
}

// Handle executes the delete product command
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
	product, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return err
	}
	if !product.IsOwnedBy(cmd.UserID) {
		return apperror.Forbidden("only the owner can delete this product")
	}

	return h.repo.Delete(ctx, cmd.ID)
}
