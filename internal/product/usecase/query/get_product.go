package query

import (
	"context"

	"github.com/pandamarket/api/internal/favorite"
	"github.com/pandamarket/api/internal/product/domain"
)

// GetProductQuery requests one product. ViewerID is 0 for anonymous
// callers; otherwise the result carries the viewer's isFavorite flag.
type GetProductQuery struct {
	ID       uint
	ViewerID uint
}

// GetProductHandler handles single product reads
type GetProductHandler struct {
	repo      domain.ProductRepository
	favorites favorite.Service
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository, favorites favorite.Service) *GetProductHandler {
	return &GetProductHandler{repo: repo, favorites: favorites}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(ctx context.Context, q GetProductQuery) (*domain.Product, error) {
	product, err := h.repo.FindByID(ctx, q.ID)
	if err != nil {
		return nil, err
	}

	if q.ViewerID != 0 {
		liked, err := h.favorites.IsFavorited(ctx, favorite.Target{Type: favorite.TargetProduct, ID: q.ID}, q.ViewerID)
		if err != nil {
			return nil, err
		}
		product.IsFavorite = liked
	}

	return product, nil
}
