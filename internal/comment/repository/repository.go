package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pandamarket/api/internal/comment/domain"
	"github.com/pandamarket/api/pkg/apperror"
)

// GormCommentRepository implements CommentRepository using GORM
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GORM comment repository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *GormCommentRepository) FindByID(ctx context.Context, id uint) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("comment not found")
		}
		return nil, err
	}
	return &comment, nil
}

func (r *GormCommentRepository) FindByProduct(ctx context.Context, productID uint, params domain.ListParams) ([]domain.Comment, error) {
	return r.findPage(ctx, r.db.WithContext(ctx).Where("product_id = ?", productID), params)
}

func (r *GormCommentRepository) FindByArticle(ctx context.Context, articleID uint, params domain.ListParams) ([]domain.Comment, error) {
	return r.findPage(ctx, r.db.WithContext(ctx).Where("article_id = ?", articleID), params)
}

func (r *GormCommentRepository) findPage(ctx context.Context, tx *gorm.DB, params domain.ListParams) ([]domain.Comment, error) {
	if params.Cursor > 0 {
		tx = tx.Where("id < ?", params.Cursor)
	}
	var comments []domain.Comment
	err := tx.Order("id DESC").Limit(params.Limit).Find(&comments).Error
	return comments, err
}

func (r *GormCommentRepository) Save(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *GormCommentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("comment not found")
	}
	return nil
}
