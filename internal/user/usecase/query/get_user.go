package query

import (
	"context"

	"github.com/pandamarket/api/internal/user/domain"
)

// GetUserQuery fetches one user by id
type GetUserQuery struct {
	ID uint
}

type GetUserHandler struct {
	repo domain.UserRepository
}

func NewGetUserHandler(repo domain.UserRepository) *GetUserHandler {
	return &GetUserHandler{repo: repo}
}

func (h *GetUserHandler) Handle(ctx context.Context, q GetUserQuery) (*domain.User, error) {
	return h.repo.FindByID(ctx, q.ID)
}
