//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	httpDelivery "github.com/pandamarket/api/internal/user/delivery/http"
	"github.com/pandamarket/api/internal/user/domain"
	"github.com/pandamarket/api/internal/user/repository"
)

// ProvideUserRepository provides the traced user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewTracingUserRepository(repository.NewGormUserRepository(db))
}

// InitializeHTTPHandler initializes the user HTTP handler
func InitializeHTTPHandler(db *gorm.DB) (*httpDelivery.UserHandler, error) {
	wire.Build(
		ProvideUserRepository,
		httpDelivery.NewUserHandler,
	)
	return nil, nil
}
