package domain

import (
	"context"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Sort orders accepted by list queries
const (
	OrderRecent   = "recent"
	OrderFavorite = "favorite"
)

// Product represents a marketplace listing
type Product struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	OwnerID       uint           `json:"ownerId" gorm:"not null;index"`
	Name          string         `json:"name" gorm:"not null"`
	Description   string         `json:"description"`
	Price         int64          `json:"price" gorm:"not null"`
	FavoriteCount int64          `json:"favoriteCount" gorm:"not null;default:0"`
	Images        pq.StringArray `json:"images" gorm:"type:text[]"`
	IsFavorite    bool           `json:"isFavorite" gorm:"-"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// IsOwnedBy checks whether the user created this product
func (p *Product) IsOwnedBy(userID uint) bool {
	return p.OwnerID == userID
}

// ListParams holds pagination, ordering and keyword filtering for listings
type ListParams struct {
	Offset  int
	Limit   int
	OrderBy string // OrderRecent (default) or OrderFavorite
	Keyword string // case-insensitive substring over name and description
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindAll(ctx context.Context, params ListParams) ([]Product, error)
	FindBest(ctx context.Context, limit int) ([]Product, error)
	FindByOwner(ctx context.Context, ownerID uint, params ListParams) ([]Product, error)
	FindFavoritedBy(ctx context.Context, userID uint, offset, limit int) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context, keyword string) (int64, error)
}
