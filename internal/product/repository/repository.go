package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pandamarket/api/internal/product/domain"
	"github.com/pandamarket/api/pkg/apperror"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{})
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("product not found")
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

func applyListParams(query *gorm.DB, params domain.ListParams) *gorm.DB {
	if params.Keyword != "" {
		pattern := "%" + params.Keyword + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
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
	return query
}

func (r *GormProductRepository) FindAll(ctx context.Context, params domain.ListParams) ([]domain.Product, error) {
	var products []domain.Product
	query := applyListParams(r.db.WithContext(ctx).Model(&domain.Product{}), params)
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	return products, nil
}

func (r *GormProductRepository) FindBest(ctx context.Context, limit int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).
		Order("favorite_count DESC, id DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find best products: %w", err)
	}
	return products, nil
}

func (r *GormProductRepository) FindByOwner(ctx context.Context, ownerID uint, params domain.ListParams) ([]domain.Product, error) {
	var products []domain.Product
	query := r.db.WithContext(ctx).Model(&domain.Product{}).Where("owner_id = ?", ownerID)
	if err := applyListParams(query, params).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find owned products: %w", err)
	}
	return products, nil
}

func (r *GormProductRepository) FindFavoritedBy(ctx context.Context, userID uint, offset, limit int) ([]domain.Product, error) {
	var products []domain.Product
	query := r.db.WithContext(ctx).
		Joins("JOIN favorites ON favorites.target_id = products.id AND favorites.target_type = ?", "product").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find favorited products: %w", err)
	}
	return products, nil
}

func (r *GormProductRepository) Save(ctx context.Context, product *domain.Product) error {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

func (r *GormProductRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("product not found")
	}
	return nil
}

func (r *GormProductRepository) Count(ctx context.Context, keyword string) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.Product{})
	if keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}
