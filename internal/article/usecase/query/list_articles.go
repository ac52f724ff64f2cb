package query

import (
	"context"

	"github.com/pandamarket/api/internal/article/domain"
	"github.com/pandamarket/api/internal/favorite"
)

const (
	defaultLimit    = 10
	maxLimit        = 100
	defaultBestSize = 3
)

// ListArticlesQuery requests a paginated article page
type ListArticlesQuery struct {
	Offset   int
	Limit    int
	OrderBy  string
	Keyword  string
	ViewerID uint
}

// ListArticlesResult is a page of articles with the filtered total
type ListArticlesResult struct {
	TotalCount int64            `json:"totalCount"`
	List       []domain.Article `json:"list"`
}

type ListArticlesHandler struct {
	repo      domain.ArticleRepository
	favorites favorite.Service
}

func NewListArticlesHandler(repo domain.ArticleRepository, favorites favorite.Service) *ListArticlesHandler {
	return &ListArticlesHandler{repo: repo, favorites: favorites}
}

func normalizeOrder(orderBy string) string {
	switch orderBy {
	case domain.OrderFavorite, "like":
		return domain.OrderFavorite
	default:
		return domain.OrderRecent
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func (h *ListArticlesHandler) Handle(ctx context.Context, q ListArticlesQuery) (*ListArticlesResult, error) {
	params := domain.ListParams{
		Offset:  q.Offset,
		Limit:   clampLimit(q.Limit),
		OrderBy: normalizeOrder(q.OrderBy),
		Keyword: q.Keyword,
	}

	articles, err := h.repo.FindAll(ctx, params)
	if err != nil {
		return nil, err
	}

	total, err := h.repo.Count(ctx, q.Keyword)
	if err != nil {
		return nil, err
	}

	if err := decorateFavorites(ctx, h.favorites, q.ViewerID, articles); err != nil {
		return nil, err
	}

	if articles == nil {
		articles = []domain.Article{}
	}
	return &ListArticlesResult{TotalCount: total, List: articles}, nil
}

// BestArticlesQuery requests the top liked articles
type BestArticlesQuery struct {
	Size     int
	ViewerID uint
}

type BestArticlesHandler struct {
	repo      domain.ArticleRepository
	favorites favorite.Service
}

func NewBestArticlesHandler(repo domain.ArticleRepository, favorites favorite.Service) *BestArticlesHandler {
	return &BestArticlesHandler{repo: repo, favorites: favorites}
}

func (h *BestArticlesHandler) Handle(ctx context.Context, q BestArticlesQuery) ([]domain.Article, error) {
	size := q.Size
	if size <= 0 {
		size = defaultBestSize
	}
	if size > maxLimit {
		size = maxLimit
	}

	articles, err := h.repo.FindBest(ctx, size)
	if err != nil {
		return nil, err
	}
	if err := decorateFavorites(ctx, h.favorites, q.ViewerID, articles); err != nil {
		return nil, err
	}
	if articles == nil {
		articles = []domain.Article{}
	}
	return articles, nil
}

func decorateFavorites(ctx context.Context, favorites favorite.Service, viewerID uint, articles []domain.Article) error {
	if viewerID == 0 || len(articles) == 0 {
		return nil
	}
	liked, err := favorites.FavoritedIDs(ctx, favorite.TargetArticle, viewerID)
	if err != nil {
		return err
	}
	for i := range articles {
		articles[i].IsFavorite = liked[articles[i].ID]
	}
	return nil
}
