package command

import (
	"context"

	"github.com/pandamarket/api/internal/user/domain"
	"github.com/pandamarket/api/pkg/apperror"
)

// UpdateProfileCommand patches the caller's own profile; nil fields keep
// their current value
type UpdateProfileCommand struct {
	UserID   uint
	Nickname *string
	Image    *string
}

type UpdateProfileHandler struct {
	repo domain.UserRepository
}

func NewUpdateProfileHandler(repo domain.UserRepository) *UpdateProfileHandler {
	return &UpdateProfileHandler{repo: repo}
}

func (h *UpdateProfileHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) (*domain.User, error) {
	user, err := h.repo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if cmd.Nickname != nil {
		if *cmd.Nickname == "" {
			return nil, apperror.Validation("nickname must not be empty")
		}
		user.Nickname = *cmd.Nickname
	}
	if cmd.Image != nil {
		user.Image = *cmd.Image
	}

	if err := h.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
