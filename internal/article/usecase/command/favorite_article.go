package command

import (
	"context"

	"github.com/pandamarket/api/internal/article/domain"
	"github.com/pandamarket/api/internal/favorite"
	"github.com/pandamarket/api/kafka"
	"github.com/pandamarket/api/pkg/logger"
)

// LikeArticleCommand represents the command to like an article
type LikeArticleCommand struct {
	ArticleID uint
	UserID    uint
}

type LikeArticleHandler struct {
	repo      domain.ArticleRepository
	favorites favorite.Service
	publisher *kafka.Publisher
}

func NewLikeArticleHandler(repo domain.ArticleRepository, favorites favorite.Service, publisher *kafka.Publisher) *LikeArticleHandler {
	return &LikeArticleHandler{repo: repo, favorites: favorites, publisher: publisher}
}

func (h *LikeArticleHandler) Handle(ctx context.Context, cmd LikeArticleCommand) (*domain.Article, error) {
	target := favorite.Target{Type: favorite.TargetArticle, ID: cmd.ArticleID}
	if err := h.favorites.Like(ctx, target, cmd.UserID); err != nil {
		return nil, err
	}

	article, err := h.repo.FindByID(ctx, cmd.ArticleID)
	if err != nil {
		return nil, err
	}
	article.IsFavorite = true

	if err := h.publisher.PublishFavoriteChanged(ctx, kafka.FavoriteChangedEvent{
		EventType:     kafka.EventTypeFavoriteAdded,
		TargetType:    string(favorite.TargetArticle),
		TargetID:      cmd.ArticleID,
		UserID:        cmd.UserID,
		FavoriteCount: article.FavoriteCount,
	}); err != nil {
		logger.Warn(ctx).Err(err).Uint("article_id", cmd.ArticleID).Msg("Failed to publish favorite event")
	}

	return article, nil
}

// UnlikeArticleCommand represents the command to remove a like from an article
type UnlikeArticleCommand struct {
	ArticleID uint
	UserID    uint
}

type UnlikeArticleHandler struct {
	repo      domain.ArticleRepository
	favorites favorite.Service
	publisher *kafka.Publisher
}

func NewUnlikeArticleHandler(repo domain.ArticleRepository, favorites favorite.Service, publisher *kafka.Publisher) *UnlikeArticleHandler {
	return &UnlikeArticleHandler{repo: repo, favorites: favorites, publisher: publisher}
}

func (h *UnlikeArticleHandler) Handle(ctx context.Context, cmd UnlikeArticleCommand) (*domain.Article, error) {
	target := favorite.Target{Type: favorite.TargetArticle, ID: cmd.ArticleID}
	if err := h.favorites.Unlike(ctx, target, cmd.UserID); err != nil {
		return nil, err
	}

	article, err := h.repo.FindByID(ctx, cmd.ArticleID)
	if err != nil {
		return nil, err
	}
	article.IsFavorite = false

	if err := h.publisher.PublishFavoriteChanged(ctx, kafka.FavoriteChangedEvent{
		EventType:     kafka.EventTypeFavoriteRemoved,
		TargetType:    string(favorite.TargetArticle),
		TargetID:      cmd.ArticleID,
		UserID:        cmd.UserID,
		FavoriteCount: article.FavoriteCount,
	}); err != nil {
		logger.Warn(ctx).Err(err).Uint("article_id", cmd.ArticleID).Msg("Failed to publish favorite event")
	}

	return article, nil
}
