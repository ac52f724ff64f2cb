package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Comment belongs to exactly one of a product or an article. Replies
// reference their parent comment through ParentID.
type Comment struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	OwnerID   uint           `json:"ownerId" gorm:"not null;index"`
	ProductID *uint          `json:"productId,omitempty" gorm:"index"`
	ArticleID *uint          `json:"articleId,omitempty" gorm:"index"`
	ParentID  *uint          `json:"parentId,omitempty" gorm:"index"`
	Content   string         `json:"content" gorm:"not null"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Comment) TableName() string {
	return "comments"
}

// IsOwnedBy checks whether the user wrote this comment
func (c *Comment) IsOwnedBy(userID uint) bool {
	return c.OwnerID == userID
}

// ListParams drives cursor pagination, newest first. Cursor is an
// exclusive upper bound on comment id; 0 starts from the newest.
type ListParams struct {
	Cursor uint
	Limit  int
}

// CommentRepository defines the contract for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	FindByID(ctx context.Context, id uint) (*Comment, error)
	FindByProduct(ctx context.Context, productID uint, params ListParams) ([]Comment, error)
	FindByArticle(ctx context.Context, articleID uint, params ListParams) ([]Comment, error)
	Save(ctx context.Context, comment *Comment) error
	Delete(ctx context.Context, id uint) error
}
