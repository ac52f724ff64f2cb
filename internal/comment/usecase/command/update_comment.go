package command

import (
	"context"

	"github.com/pandamarket/api/internal/comment/domain"
	"github.com/pandamarket/api/pkg/apperror"
)

// UpdateCommentCommand rewrites a comment's content
type UpdateCommentCommand struct {
	ID      uint
	UserID  uint
	Content string
}

type UpdateCommentHandler struct {
	repo domain.CommentRepository
}

func NewUpdateCommentHandler(repo domain.CommentRepository) *UpdateCommentHandler {
	return &UpdateCommentHandler{repo: repo}
}

func (h *UpdateCommentHandler) Handle(ctx context.Context, cmd UpdateCommentCommand) (*domain.Comment, error) {
	if cmd.Content == "" {
		return nil, apperror.Validation("content is required")
	}
	if len(cmd.Content) > maxContentLen {
		return nil, apperror.Validation("content must be at most 1000 characters")
	}

	comment, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	if !comment.IsOwnedBy(cmd.UserID) {
		return nil, apperror.Forbidden("only the owner can update this comment")
	}

	comment.Content = cmd.Content
	if err := h.repo.Save(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
