package query

import (
	"context"

	"github.com/pandamarket/api/internal/article/domain"
	"github.com/pandamarket/api/internal/favorite"
)

// GetArticleQuery fetches one article, decorated for the viewer
type GetArticleQuery struct {
	ID       uint
	ViewerID uint // 0 for anonymous
}

type GetArticleHandler struct {
	repo      domain.ArticleRepository
	favorites favorite.Service
}

func NewGetArticleHandler(repo domain.ArticleRepository, favorites favorite.Service) *GetArticleHandler {
	return &GetArticleHandler{repo: repo, favorites: favorites}
}

func (h *GetArticleHandler) Handle(ctx context.Context, q GetArticleQuery) (*domain.Article, error) {
	article, err := h.repo.FindByID(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	if q.ViewerID != 0 {
		liked, err := h.favorites.IsFavorited(ctx, favorite.Target{Type: favorite.TargetArticle, ID: q.ID}, q.ViewerID)
		if err != nil {
			return nil, err
		}
		article.IsFavorite = liked
	}
	return article, nil
}
