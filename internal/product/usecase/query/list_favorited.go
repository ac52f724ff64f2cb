package query

import (
	"context"

	"github.com/pandamarket/api/internal/product/domain"
)

// ListFavoritedQuery requests the products the caller has liked
type ListFavoritedQuery struct {
	UserID uint
	Offset int
	Limit  int
}

// ListFavoritedHandler handles the "my favorites" query
type ListFavoritedHandler struct {
	repo domain.ProductRepository
}

// NewListFavoritedHandler creates a new list favorited handler
func NewListFavoritedHandler(repo domain.ProductRepository) *ListFavoritedHandler {
	return &ListFavoritedHandler{repo: repo}
}

// Handle executes the list favorited query
func (h *ListFavoritedHandler) Handle(ctx context.Context, q ListFavoritedQuery) ([]domain.Product, error) {
	products, err := h.repo.FindFavoritedBy(ctx, q.UserID, q.Offset, ClampLimit(q.Limit))
	if err != nil {
		return nil, err
	}

	// Everything here is by definition favorited by the caller
	for i := range products {
		products[i].IsFavorite = true
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}
