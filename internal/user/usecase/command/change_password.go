package command

import (
	"context"

	"github.com/pandamarket/api/internal/user/domain"
	"github.com/pandamarket/api/pkg/apperror"
	"github.com/pandamarket/api/pkg/auth"
)

// ChangePasswordCommand replaces the caller's password after verifying
// the current one
type ChangePasswordCommand struct {
	UserID          uint
	CurrentPassword string
	NewPassword     string
}

type ChangePasswordHandler struct {
	repo domain.UserRepository
}

func NewChangePasswordHandler(repo domain.UserRepository) *ChangePasswordHandler {
	return &ChangePasswordHandler{repo: repo}
}

func (h *ChangePasswordHandler) Handle(ctx context.Context, cmd ChangePasswordCommand) error {
	if len(cmd.NewPassword) < 8 {
		return apperror.Validation("password must be at least 8 characters")
	}

	user, err := h.repo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return err
	}
	if !user.HasPassword() {
		return apperror.Validation("this account signs in through an external provider")
	}
	if !auth.CheckPassword(*user.Password, cmd.CurrentPassword) {
		return apperror.Unauthorized("current password is incorrect")
	}

	hash, err := auth.HashPassword(cmd.NewPassword)
	if err != nil {
		return err
	}
	user.Password = &hash
	return h.repo.Save(ctx, user)
}
