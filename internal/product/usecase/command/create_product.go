package command

import (
	"context"

	"github.com/pandamarket/api/internal/product/domain"
	"github.com/pandamarket/api/pkg/apperror"
)

// CreateProductCommand represents the command to create a product
type CreateProductCommand struct {
	OwnerID     uint
	Name        string
	Description string
	Price       int64
	Images      []string
}

// CreateProductHandler handles product creation
type CreateProductHandler struct {
	repo domain.ProductRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, apperror.Validation("name is required")
	}
	if len(cmd.Name) > 100 {
		return nil, apperror.Validation("name must be at most 100 characters")
	}
	if cmd.Price < 0 {
		return nil, apperror.Validation("price must not be negative")
	}

	product := &domain.Product{
		OwnerID:     cmd.OwnerID,
		Name:        cmd.Name,
		Description: cmd.Description,
		Price:       cmd.Price,
		Images:      cmd.Images,
	}

	if err := h.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}
