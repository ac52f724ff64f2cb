package command

import (
	"context"

	"github.com/pandamarket/api/internal/comment/domain"
	"github.com/pandamarket/api/pkg/apperror"
)

// DeleteCommentCommand removes a comment owned by UserID
type DeleteCommentCommand struct {
	ID     uint
	UserID uint
}

type DeleteCommentHandler struct {
	repo domain.CommentRepository
}

func NewDeleteCommentHandler(repo domain.CommentRepository) *DeleteCommentHandler {
	return &DeleteCommentHandler{repo: repo}
}

func (h *DeleteCommentHandler) Handle(ctx context.Context, cmd DeleteCommentCommand) error {
	comment, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return err
	}
	if !comment.IsOwnedBy(cmd.UserID) {
		return apperror.Forbidden("only the owner can delete this comment")
	}
	return h.repo.Delete(ctx, cmd.ID)
}
