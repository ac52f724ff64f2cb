//go:build wireinject
// +build wireinject

package product

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/pandamarket/api/internal/favorite"
	httpDelivery "github.com/pandamarket/api/internal/product/delivery/http"
	"github.com/pandamarket/api/internal/product/domain"
	"github.com/pandamarket/api/internal/product/repository"
	"github.com/pandamarket/api/kafka"
)

// ProvideProductRepository provides the traced product repository
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewTracingProductRepository(repository.NewGormProductRepository(db))
}

// ProvideFavoriteService provides the GORM favorite service
func ProvideFavoriteService(db *gorm.DB) favorite.Service {
	return favorite.NewGormService(db)
}

var RepositorySet = wire.NewSet(
	ProvideProductRepository,
	ProvideFavoriteService,
)

// InitializeHTTPHandler initializes the product HTTP handler
func InitializeHTTPHandler(db *gorm.DB, publisher *kafka.Publisher) (*httpDelivery.ProductHandler, error) {
	wire.Build(
		RepositorySet,
		httpDelivery.NewProductHandler,
	)
	return nil, nil
}
