package command

import (
	"context"

	"github.com/pandamarket/api/internal/product/domain"
	"github.com/pandamarket/api/pkg/apperror"
)

// UpdateProductCommand represents a partial update to a product.
// Nil fields are left unchanged.
type UpdateProductCommand struct {
	ID          uint
	UserID      uint
	Name        *string
	Description *string
	Price       *int64
	Images      *[]string
}

// UpdateProductHandler handles owner-gated product updates
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command. Ownership is re-checked
// against a fresh fetch; a vanished product surfaces as NotFound.
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	product, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	if !product.IsOwnedBy(cmd.UserID) {
		return nil, apperror.Forbidden("only the owner can update this product")
	}

	if cmd.Name != nil {
		if *cmd.Name == "" {
			return nil, apperror.Validation("name must not be empty")
		}
		product.Name = *cmd.Name
	}
	if cmd.Description != nil {
		product.Description = *cmd.Description
	}
	if cmd.Price != nil {
		if *cmd.Price < 0 {
			return nil, apperror.Validation("price must not be negative")
		}
		product.Price = *cmd.Price
	}
	if cmd.Images != nil {
		product.Images = *cmd.Images
	}

	if err := h.repo.Save(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}
