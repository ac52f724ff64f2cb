package query

import (
	"context"

	"github.com/pandamarket/api/internal/product/domain"
)

// ListOwnedQuery requests the caller's own product listings
type ListOwnedQuery struct {
	OwnerID uint
	Offset  int
	Limit   int
	Keyword string
}

// ListOwnedHandler handles the "my products" query
type ListOwnedHandler struct {
	repo domain.ProductRepository
}

// NewListOwnedHandler creates a new list owned handler
func NewListOwnedHandler(repo domain.ProductRepository) *ListOwnedHandler {
	return &ListOwnedHandler{repo: repo}
}

// Handle executes the list owned query
func (h *ListOwnedHandler) Handle(ctx context.Context, q ListOwnedQuery) ([]domain.Product, error) {
	params := domain.ListParams{
		Offset:  q.Offset,
		Limit:   ClampLimit(q.Limit),
		OrderBy: domain.OrderRecent,
		Keyword: q.Keyword,
	}

	products, err := h.repo.FindByOwner(ctx, q.OwnerID, params)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}
