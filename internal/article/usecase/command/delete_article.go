package command

import (
	"context"

	"github.com/pandamarket/api/internal/article/domain"
	"github.com/pandamarket/api/pkg/apperror"
)

// DeleteArticleCommand removes an article owned by UserID
type DeleteArticleCommand struct {
	ID     uint
	UserID uint
}

type DeleteArticleHandler struct {
	repo domain.ArticleRepository
}

func NewDeleteArticleHandler(repo domain.ArticleRepository) *DeleteArticleHandler {
	return &DeleteArticleHandler{repo: repo}
}

func (h *DeleteArticleHandler) Handle(ctx context.Context, cmd DeleteArticleCommand) error {
	article, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return err
	}
	if !article.IsOwnedBy(cmd.UserID) {
		return apperror.Forbidden("only the owner can delete this article")
	}
	return h.repo.Delete(ctx, cmd.ID)
}
