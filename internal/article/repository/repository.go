package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pandamarket/api/internal/article/domain"
	"github.com/pandamarket/api/pkg/apperror"
)

// GormArticleRepository implements ArticleRepository using GORM
type GormArticleRepository struct {
	db *gorm.DB
}

// NewGormArticleRepository creates a new GORM article repository
func NewGormArticleRepository(db *gorm.DB) *GormArticleRepository {
	return &GormArticleRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GormArticleRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Article{})
}

func (r *GormArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	if err := r.db.WithContext(ctx).Create(article).Error; err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}
	return nil
}

func (r *GormArticleRepository) FindByID(ctx context.Context, id uint) (*domain.Article, error) {
	var article domain.Article
	if err := r.db.WithContext(ctx).First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("article not found")
		}
		return nil, fmt.Errorf("failed to find article: %w", err)
	}
	return &article, nil
}

func (r *GormArticleRepository) FindAll(ctx context.Context, params domain.ListParams) ([]domain.Article, error) {
	var articles []domain.Article
	query := r.db.WithContext(ctx).Model(&domain.Article{})

	if params.Keyword != "" {
		pattern := "%" + params.Keyword + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}

	switch params.OrderBy {
	case domain.OrderFavorite:
		query = query.Order("favorite_count DESC, id DESC")
	default:
		query = query.Order("created_at DESC, id DESC")
	}

	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}
	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}

	if err := query.Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("failed to find articles: %w", err)
	}
	return articles, nil
}

func (r *GormArticleRepository) FindBest(ctx context.Context, limit int) ([]domain.Article, error) {
	var articles []domain.Article
	err := r.db.WithContext(ctx).
		Order("favorite_count DESC, id DESC").
		Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find best articles: %w", err)
	}
	return articles, nil
}

func (r *GormArticleRepository) Save(ctx context.Context, article *domain.Article) error {
	if err := r.db.WithContext(ctx).Save(article).Error; err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}
	return nil
}

func (r *GormArticleRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Article{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete article: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("article not found")
	}
	return nil
}

func (r *GormArticleRepository) Count(ctx context.Context, keyword string) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.Article{})
	if keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return count, nil
}
