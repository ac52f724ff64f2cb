package query

import (
	"context"

	"github.com/pandamarket/api/internal/product/domain"
)

const defaultBestSize = 4

// BestProductsQuery requests the fixed-size most-favorited sublist
type BestProductsQuery struct {
	Limit int
}

// BestProductsHandler handles the best products query
type BestProductsHandler struct {
	repo domain.ProductRepository
}

// NewBestProductsHandler creates a new best products handler
func NewBestProductsHandler(repo domain.ProductRepository) *BestProductsHandler {
	return &BestProductsHandler{repo: repo}
}

// Handle executes the best products query, ordered strictly by favorite
// count descending regardless of any list ordering
func (h *BestProductsHandler) Handle(ctx context.Context, q BestProductsQuery) ([]domain.Product, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultBestSize
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	products, err := h.repo.FindBest(ctx, limit)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}
