package query

import (
	"context"

	"github.com/pandamarket/api/internal/favorite"
	"github.com/pandamarket/api/internal/product/domain"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// ListProductsQuery requests a paginated product page
type ListProductsQuery struct {
	Offset   int
	Limit    int
	OrderBy  string // "recent" (default), "favorite" ("like" accepted as alias)
	Keyword  string
	ViewerID uint
}

// ListProductsResult is a page of products with the filtered total
type ListProductsResult struct {
	TotalCount int64            `json:"totalCount"`
	List       []domain.Product `json:"list"`
}

// ListProductsHandler handles product listing
type ListProductsHandler struct {
	repo      domain.ProductRepository
	favorites favorite.Service
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository, favorites favorite.Service) *ListProductsHandler {
	return &ListProductsHandler{repo: repo, favorites: favorites}
}

// NormalizeOrder maps client order values onto the repository enum
func NormalizeOrder(orderBy string) string {
	switch orderBy {
	case domain.OrderFavorite, "like":
		return domain.OrderFavorite
	default:
		return domain.OrderRecent
	}
}

// ClampLimit applies the default page size and the upper bound
func ClampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(ctx context.Context, q ListProductsQuery) (*ListProductsResult, error) {
	params := domain.ListParams{
		Offset:  q.Offset,
		Limit:   ClampLimit(q.Limit),
		OrderBy: NormalizeOrder(q.OrderBy),
		Keyword: q.Keyword,
	}

	products, err := h.repo.FindAll(ctx, params)
	if err != nil {
		return nil, err
	}

	total, err := h.repo.Count(ctx, q.Keyword)
	if err != nil {
		return nil, err
	}

	if err := decorateFavorites(ctx, h.favorites, q.ViewerID, products); err != nil {
		return nil, err
	}

	if products == nil {
		products = []domain.Product{}
	}
	return &ListProductsResult{TotalCount: total, List: products}, nil
}

// decorateFavorites sets IsFavorite on each product for the viewer
func decorateFavorites(ctx context.Context, favorites favorite.Service, viewerID uint, products []domain.Product) error {
	if viewerID == 0 || len(products) == 0 {
		return nil
	}
	liked, err := favorites.FavoritedIDs(ctx, favorite.TargetProduct, viewerID)
	if err != nil {
		return err
	}
	for i := range products {
		products[i].IsFavorite = liked[products[i].ID]
	}
	return nil
}
