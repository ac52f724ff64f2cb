package command

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/pandamarket/api/internal/user/domain"
	"github.com/pandamarket/api/pkg/apperror"
	"github.com/pandamarket/api/pkg/auth"
)

// AuthResult is returned by every operation that issues a token
type AuthResult struct {
	Token string       `json:"accessToken"`
	User  *domain.User `json:"user"`
}

// RegisterCommand creates a password account
type RegisterCommand struct {
	Email    string
	Nickname string
	Password string
}

// RegisterHandler handles account registration
type RegisterHandler struct {
	repo domain.UserRepository
}

// NewRegisterHandler creates a new register handler
func NewRegisterHandler(repo domain.UserRepository) *RegisterHandler {
	return &RegisterHandler{repo: repo}
}

func (h *RegisterHandler) Handle(ctx context.Context, cmd RegisterCommand) (*AuthResult, error) {
	if err := validateRegistration(cmd); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:    &cmd.Email,
		Nickname: cmd.Nickname,
		Password: &hash,
	}
	if err := h.repo.Create(ctx, user); err != nil {
		// The unique index on email is the authoritative check
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Validation("email is already registered")
		}
		return nil, err
	}

	token, err := auth.GenerateToken(user.ID, user.Nickname)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func validateRegistration(cmd RegisterCommand) error {
	if cmd.Email == "" || !strings.Contains(cmd.Email, "@") {
		return apperror.Validation("a valid email is required")
	}
	if cmd.Nickname == "" {
		return apperror.Validation("nickname is required")
	}
	if len(cmd.Password) < 8 {
		return apperror.Validation("password must be at least 8 characters")
	}
	return nil
}
