//go:build wireinject
// +build wireinject

package article

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	httpDelivery "github.com/pandamarket/api/internal/article/delivery/http"
	"github.com/pandamarket/api/internal/article/domain"
	"github.com/pandamarket/api/internal/article/repository"
	"github.com/pandamarket/api/internal/favorite"
	"github.com/pandamarket/api/kafka"
)

// ProvideArticleRepository provides the GORM article repository
func ProvideArticleRepository(db *gorm.DB) domain.ArticleRepository {
	return repository.NewGormArticleRepository(db)
}

// ProvideFavoriteService provides the GORM favorite service
func ProvideFavoriteService(db *gorm.DB) favorite.Service {
	return favorite.NewGormService(db)
}

var RepositorySet = wire.NewSet(
	ProvideArticleRepository,
	ProvideFavoriteService,
)

// InitializeHTTPHandler initializes the article HTTP handler
func InitializeHTTPHandler(db *gorm.DB, publisher *kafka.Publisher) (*httpDelivery.ArticleHandler, error) {
	wire.Build(
		RepositorySet,
		httpDelivery.NewArticleHandler,
	)
	return nil, nil
}
