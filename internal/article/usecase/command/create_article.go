package command

import (
	"context"

	"github.com/pandamarket/api/internal/article/domain"
	"github.com/pandamarket/api/pkg/apperror"
)

// CreateArticleCommand represents the command to create an article
type CreateArticleCommand struct {
	OwnerID uint
	Title   string
	Content string
	Image   string
}

// CreateArticleHandler handles article creation
type CreateArticleHandler struct {
	repo domain.ArticleRepository
}

func NewCreateArticleHandler(repo domain.ArticleRepository) *CreateArticleHandler {
	return &CreateArticleHandler{repo: repo}
}

func (h *CreateArticleHandler) Handle(ctx context.Context, cmd CreateArticleCommand) (*domain.Article, error) {
	if cmd.Title == "" {
		return nil, apperror.Validation("title is required")
	}
	if len(cmd.Title) > 200 {
		return nil, apperror.Validation("title must be at most 200 characters")
	}

	article := &domain.Article{
		OwnerID: cmd.OwnerID,
		Title:   cmd.Title,
		Content: cmd.Content,
		Image:   cmd.Image,
	}

	if err := h.repo.Create(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}
