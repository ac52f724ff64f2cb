package command

import (
	"context"
	"errors"

	"github.com/pandamarket/api/internal/user/domain"
	"github.com/pandamarket/api/pkg/apperror"
	"github.com/pandamarket/api/pkg/auth"
)

// LoginCommand authenticates a password account
type LoginCommand struct {
	Email    string
	Password string
}

// LoginHandler handles password logins
type LoginHandler struct {
	repo domain.UserRepository
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(repo domain.UserRepository) *LoginHandler {
	return &LoginHandler{repo: repo}
}

func (h *LoginHandler) Handle(ctx context.Context, cmd LoginCommand) (*AuthResult, error) {
	user, err := h.repo.FindByEmail(ctx, cmd.Email)
	if err != nil {
		// A missing account and a wrong password read the same
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("invalid email or password")
		}
		return nil, err
	}

	if !user.HasPassword() || !auth.CheckPassword(*user.Password, cmd.Password) {
		return nil, apperror.Unauthorized("invalid email or password")
	}

	token, err := auth.GenerateToken(user.ID, user.Nickname)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}
