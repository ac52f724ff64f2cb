package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Sort orders accepted by list queries
const (
	OrderRecent   = "recent"
	OrderFavorite = "favorite"
)

// Article represents a free-board post
type Article struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	OwnerID       uint           `json:"ownerId" gorm:"not null;index"`
	Title         string         `json:"title" gorm:"not null"`
	Content       string         `json:"content"`
	Image         string         `json:"image"`
	FavoriteCount int64          `json:"favoriteCount" gorm:"not null;default:0"`
	IsFavorite    bool           `json:"isFavorite" gorm:"-"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Article) TableName() string {
	return "articles"
}

// IsOwnedBy checks whether the user created this article
func (a *Article) IsOwnedBy(userID uint) bool {
	return a.OwnerID == userID
}

// ListParams holds pagination, ordering and keyword filtering
type ListParams struct {
	Offset  int
	Limit   int
	OrderBy string
	Keyword string // matched over title and content
}

// ArticleRepository defines the contract for article data access
type ArticleRepository interface {
	Create(ctx context.Context, article *Article) error
	FindByID(ctx context.Context, id uint) (*Article, error)
	FindAll(ctx context.Context, params ListParams) ([]Article, error)
	FindBest(ctx context.Context, limit int) ([]Article, error)
	Save(ctx context.Context, article *Article) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context, keyword string) (int64, error)
}
