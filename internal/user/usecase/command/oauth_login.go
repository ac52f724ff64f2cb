package command

import (
	"context"
	"errors"

	"github.com/pandamarket/api/internal/user/domain"
	"github.com/pandamarket/api/pkg/apperror"
	"github.com/pandamarket/api/pkg/auth"
)

// OAuthLoginCommand signs a user in through an external identity
// provider, creating the account on first login
type OAuthLoginCommand struct {
	Provider   string
	ProviderID string
	Nickname   string
	Email      string
	Image      string
}

// OAuthLoginHandler handles OAuth logins. Accounts created here carry a
// null password and can only sign in through the same provider.
type OAuthLoginHandler struct {
	repo domain.UserRepository
}

// NewOAuthLoginHandler creates a new OAuth login handler
func NewOAuthLoginHandler(repo domain.UserRepository) *OAuthLoginHandler {
	return &OAuthLoginHandler{repo: repo}
}

func (h *OAuthLoginHandler) Handle(ctx context.Context, cmd OAuthLoginCommand) (*AuthResult, error) {
	if cmd.Provider == "" || cmd.ProviderID == "" {
		return nil, apperror.Validation("provider and providerId are required")
	}
	if cmd.Nickname == "" {
		return nil, apperror.Validation("nickname is required")
	}

	user, err := h.repo.FindByProvider(ctx, cmd.Provider, cmd.ProviderID)
	switch {
	case err == nil:
		// Refresh the profile picture the provider sent this time
		if cmd.Image != "" && cmd.Image != user.Image {
			user.Image = cmd.Image
			if err := h.repo.Save(ctx, user); err != nil {
				return nil, err
			}
		}
	case errors.Is(err, apperror.ErrNotFound):
		user = &domain.User{
			Nickname:   cmd.Nickname,
			Provider:   &cmd.Provider,
			ProviderID: &cmd.ProviderID,
			Image:      cmd.Image,
		}
		if cmd.Email != "" {
			user.Email = &cmd.Email
		}
		if err := h.repo.Create(ctx, user); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	token, err := auth.GenerateToken(user.ID, user.Nickname)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}
