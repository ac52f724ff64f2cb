package command

import (
	"context"

	"github.com/pandamarket/api/internal/favorite"
	"github.com/pandamarket/api/internal/product/domain"
	"github.com/pandamarket/api/kafka"
	"github.com/pandamarket/api/pkg/logger"
)

// LikeProductCommand represents the command to like a product
type LikeProductCommand struct {
	ProductID uint
	UserID    uint
}

// LikeProductHandler flips a user's favorite on and returns the updated
// product. The favorite service owns the row+counter atomicity.
type LikeProductHandler struct {
	repo      domain.ProductRepository
	favorites favorite.Service
	publisher *kafka.Publisher
}

// NewLikeProductHandler creates a new like product handler
func NewLikeProductHandler(repo domain.ProductRepository, favorites favorite.Service, publisher *kafka.Publisher) *LikeProductHandler {
	return &LikeProductHandler{repo: repo, favorites: favorites, publisher: publisher}
}

// Handle executes the like product command
func (h *LikeProductHandler) Handle(ctx context.Context, cmd LikeProductCommand) (*domain.Product, error) {
	target := favorite.Target{Type: favorite.TargetProduct, ID: cmd.ProductID}
	if err := h.favorites.Like(ctx, target, cmd.UserID); err != nil {
		return nil, err
	}

	product, err := h.repo.FindByID(ctx, cmd.ProductID)
	if err != nil {
		return nil, err
	}
	product.IsFavorite = true

	// Best-effort notification; the like itself has already committed
	if err := h.publisher.PublishFavoriteChanged(ctx, kafka.FavoriteChangedEvent{
		EventType:     kafka.EventTypeFavoriteAdded,
		TargetType:    string(favorite.TargetProduct),
		TargetID:      cmd.ProductID,
		UserID:        cmd.UserID,
		FavoriteCount: product.FavoriteCount,
	}); err != nil {
		logger.Warn(ctx).Err(err).Uint("product_id", cmd.ProductID).Msg("Failed to publish favorite event")
	}

	return product, nil
}
