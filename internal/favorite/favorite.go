// Package favorite implements the user<->target "like" relation shared by
// products and articles. One join table covers every target type; the
// composite unique index on (user_id, target_type, target_id) is what makes
// the check-then-act toggle safe under concurrent requests.
package favorite

import (
	"context"
	"time"
)

// TargetType identifies which entity table a favorite points at
type TargetType string

const (
	TargetProduct TargetType = "product"
	TargetArticle TargetType = "article"
)

// Target names a single likeable entity
type Target struct {
	Type TargetType
	ID   uint
}

// Favorite is the join row between a user and a target entity
type Favorite struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"userId" gorm:"not null;uniqueIndex:uq_favorites_user_target;index:idx_favorites_user"`
	TargetType string    `json:"targetType" gorm:"not null;uniqueIndex:uq_favorites_user_target"`
	TargetID   uint      `json:"targetId" gorm:"not null;uniqueIndex:uq_favorites_user_target;index:idx_favorites_target"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName specifies the table name
func (Favorite) TableName() string {
	return "favorites"
}

// Service toggles favorites and keeps the target's denormalized
// favorite_count in step. Like and Unlike are all-or-nothing: the join row
// and the counter change together or not at all.
type Service interface {
	// Like fails with apperror.ErrAlreadyFavorited when the row already
	// exists and apperror.ErrNotFound when the target does not.
	Like(ctx context.Context, target Target, userID uint) error
	// Unlike fails with apperror.ErrNotFavorited when no row exists.
	Unlike(ctx context.Context, target Target, userID uint) error
	IsFavorited(ctx context.Context, target Target, userID uint) (bool, error)
	// FavoritedIDs returns the set of target ids of the given type the user
	// has favorited, for decorating list responses.
	FavoritedIDs(ctx context.Context, targetType TargetType, userID uint) (map[uint]bool, error)
}
