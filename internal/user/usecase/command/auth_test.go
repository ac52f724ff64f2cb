package command_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandamarket/api/internal/user/repository"
	"github.com/pandamarket/api/internal/user/usecase/command"
	"github.com/pandamarket/api/pkg/apperror"
	"github.com/pandamarket/api/pkg/auth"
)

func TestRegisterAndLogin(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	register := command.NewRegisterHandler(repo)
	login := command.NewLoginHandler(repo)
	ctx := context.Background()

	result, err := register.Handle(ctx, command.RegisterCommand{
		Email:    "panda@example.com",
		Nickname: "panda",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "panda", result.User.Nickname)

	// The stored password is a hash, never the plaintext
	require.NotNil(t, result.User.Password)
	assert.NotEqual(t, "supersecret", *result.User.Password)

	loginResult, err := login.Handle(ctx, command.LoginCommand{
		Email:    "panda@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, loginResult.User.ID)

	claims, err := auth.ValidateToken(loginResult.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
}

func TestRegisterValidation(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	handler := command.NewRegisterHandler(repo)
	ctx := context.Background()

	cases := []command.RegisterCommand{
		{Email: "", Nickname: "panda", Password: "supersecret"},
		{Email: "not-an-email", Nickname: "panda", Password: "supersecret"},
		{Email: "panda@example.com", Nickname: "", Password: "supersecret"},
		{Email: "panda@example.com", Nickname: "panda", Password: "short"},
	}
	for _, cmd := range cases {
		_, err := handler.Handle(ctx, cmd)
		assert.ErrorIs(t, err, apperror.ErrValidation)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	handler := command.NewRegisterHandler(repo)
	ctx := context.Background()

	cmd := command.RegisterCommand{Email: "panda@example.com", Nickname: "panda", Password: "supersecret"}
	_, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)

	cmd.Nickname = "other"
	_, err = handler.Handle(ctx, cmd)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	register := command.NewRegisterHandler(repo)
	login := command.NewLoginHandler(repo)
	ctx := context.Background()

	_, err := register.Handle(ctx, command.RegisterCommand{
		Email:    "panda@example.com",
		Nickname: "panda",
		Password: "supersecret",
	})
	require.NoError(t, err)

	_, err = login.Handle(ctx, command.LoginCommand{Email: "panda@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	// Unknown accounts read identically to a wrong password
	_, err = login.Handle(ctx, command.LoginCommand{Email: "ghost@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestOAuthLoginCreatesThenReuses(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	handler := command.NewOAuthLoginHandler(repo)
	ctx := context.Background()

	cmd := command.OAuthLoginCommand{
		Provider:   "google",
		ProviderID: "sub-123",
		Nickname:   "panda",
		Email:      "panda@gmail.com",
	}

	first, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Nil(t, first.User.Password)

	second, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)
}

func TestOAuthAccountCannotPasswordLogin(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	oauth := command.NewOAuthLoginHandler(repo)
	login := command.NewLoginHandler(repo)
	ctx := context.Background()

	_, err := oauth.Handle(ctx, command.OAuthLoginCommand{
		Provider:   "google",
		ProviderID: "sub-123",
		Nickname:   "panda",
		Email:      "panda@gmail.com",
	})
	require.NoError(t, err)

	_, err = login.Handle(ctx, command.LoginCommand{Email: "panda@gmail.com", Password: "anything"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestChangePassword(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	register := command.NewRegisterHandler(repo)
	change := command.NewChangePasswordHandler(repo)
	login := command.NewLoginHandler(repo)
	ctx := context.Background()

	result, err := register.Handle(ctx, command.RegisterCommand{
		Email:    "panda@example.com",
		Nickname: "panda",
		Password: "supersecret",
	})
	require.NoError(t, err)

	err = change.Handle(ctx, command.ChangePasswordCommand{
		UserID:          result.User.ID,
		CurrentPassword: "wrong",
		NewPassword:     "evenmoresecret",
	})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	require.NoError(t, change.Handle(ctx, command.ChangePasswordCommand{
		UserID:          result.User.ID,
		CurrentPassword: "supersecret",
		NewPassword:     "evenmoresecret",
	}))

	_, err = login.Handle(ctx, command.LoginCommand{Email: "panda@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = login.Handle(ctx, command.LoginCommand{Email: "panda@example.com", Password: "evenmoresecret"})
	assert.NoError(t, err)
}
