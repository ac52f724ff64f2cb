package command

import (
	"context"

	"github.com/pandamarket/api/internal/favorite"
	"github.com/pandamarket/api/internal/product/domain"
	"github.com/pandamarket/api/kafka"
	"github.com/pandamarket/api/pkg/logger"
)

// UnlikeProductCommand represents the command to remove a like
type UnlikeProductCommand struct {
	ProductID uint
	UserID    uint
}

// UnlikeProductHandler flips a user's favorite off and returns the updated
// product
type UnlikeProductHandler struct {
	repo      domain.ProductRepository
	favorites favorite.Service
	publisher *kafka.Publisher
}

// NewUnlikeProductHandler creates a new unlike product handler
func NewUnlikeProductHandler(repo domain.ProductRepository, favorites favorite.Service, publisher *kafka.Publisher) *UnlikeProductHandler {
	return &UnlikeProductHandler{repo: repo, favorites: favorites, publisher: publisher}
}

// Handle executes the unlike product command
func (h *UnlikeProductHandler) Handle(ctx context.Context, cmd UnlikeProductCommand) (*domain.Product, error) {
	target := favorite.Target{Type: favorite.TargetProduct, ID: cmd.ProductID}
	if err := h.favorites.Unlike(ctx, target, cmd.UserID); err != nil {
		return nil, err
	}

	product, err := h.repo.FindByID(ctx, cmd.ProductID)
	if err != nil {
		return nil, err
	}
	product.IsFavorite = false

	if err := h.publisher.PublishFavoriteChanged(ctx, kafka.FavoriteChangedEvent{
		EventType:     kafka.EventTypeFavoriteRemoved,
		TargetType:    string(favorite.TargetProduct),
		TargetID:      cmd.ProductID,
		UserID:        cmd.UserID,
		FavoriteCount: product.FavoriteCount,
	}); err != nil {
		logger.Warn(ctx).Err(err).Uint("product_id", cmd.ProductID).Msg("Failed to publish favorite event")
	}

	return product, nil
}
