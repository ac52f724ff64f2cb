package command

import (
	"context"

	"github.com/pandamarket/api/internal/article/domain"
	"github.com/pandamarket/api/pkg/apperror"
)

// UpdateArticleCommand represents a partial update; nil fields keep their
// current value
type UpdateArticleCommand struct {
	ID      uint
	UserID  uint
	Title   *string
	Content *string
	Image   *string
}

// UpdateArticleHandler handles owner-gated article updates
type UpdateArticleHandler struct {
	repo domain.ArticleRepository
}

func NewUpdateArticleHandler(repo domain.ArticleRepository) *UpdateArticleHandler {
	return &UpdateArticleHandler{repo: repo}
}

func (h *UpdateArticleHandler) Handle(ctx context.Context, cmd UpdateArticleCommand) (*domain.Article, error) {
	article, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	if !article.IsOwnedBy(cmd.UserID) {
		return nil, apperror.Forbidden("only the owner can update this article")
	}

	if cmd.Title != nil {
		if *cmd.Title == "" {
			return nil, apperror.Validation("title must not be empty")
		}
		article.Title = *cmd.Title
	}
	if cmd.Content != nil {
		article.Content = *cmd.Content
	}
	if cmd.Image != nil {
		article.Image = *cmd.Image
	}

	if err := h.repo.Save(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}
