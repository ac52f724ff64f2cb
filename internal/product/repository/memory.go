package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/pandamarket/api/internal/favorite"
	"github.com/pandamarket/api/internal/product/domain"
	"github.com/pandamarket/api/pkg/apperror"
)

// MemoryProductRepository is a map-backed ProductRepository. It also
// implements the favorite in-memory store's TargetStore so the counter on a
// product moves exactly as the favorites table drives it in production.
type MemoryProductRepository struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]domain.Product

	// favoritedBy mirrors the join table ordering used by FindFavoritedBy
	favoritedBy map[uint][]uint
}

// NewMemoryProductRepository creates an empty in-memory repository
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		nextID:      1,
		rows:        make(map[uint]domain.Product),
		favoritedBy: make(map[uint][]uint),
	}
}

// AdjustFavoriteCount implements inmemory.TargetStore
func (r *MemoryProductRepository) AdjustFavoriteCount(target favorite.Target, delta int) error {
	if target.Type != favorite.TargetProduct {
		return apperror.NotFound("product not found")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.rows[target.ID]
	if !ok {
		return apperror.NotFound("product not found")
	}
	product.FavoriteCount += int64(delta)
	r.rows[target.ID] = product
	return nil
}

func (r *MemoryProductRepository) Create(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = r.nextID
	r.nextID++
	r.rows[product.ID] = *product
	return nil
}

func (r *MemoryProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.rows[id]
	if !ok {
		return nil, apperror.NotFound("product not found")
	}
	return &product, nil
}

func matchesKeyword(p domain.Product, keyword string) bool {
	if keyword == "" {
		return true
	}
	kw := strings.ToLower(keyword)
	return strings.Contains(strings.ToLower(p.Name), kw) ||
		strings.Contains(strings.ToLower(p.Description), kw)
}

func sortProducts(products []domain.Product, orderBy string) {
	sort.Slice(products, func(i, j int) bool {
		if orderBy == domain.OrderFavorite {
			if products[i].FavoriteCount != products[j].FavoriteCount {
				return products[i].FavoriteCount > products[j].FavoriteCount
			}
			return products[i].ID > products[j].ID
		}
		if !products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		}
		return products[i].ID > products[j].ID
	})
}

func paginate(products []domain.Product, offset, limit int) []domain.Product {
	if offset >= len(products) {
		return nil
	}
	products = products[offset:]
	if limit > 0 && limit < len(products) {
		products = products[:limit]
	}
	return products
}

func (r *MemoryProductRepository) FindAll(ctx context.Context, params domain.ListParams) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var products []domain.Product
	for _, p := range r.rows {
		if matchesKeyword(p, params.Keyword) {
			products = append(products, p)
		}
	}
	sortProducts(products, params.OrderBy)
	return paginate(products, params.Offset, params.Limit), nil
}

func (r *MemoryProductRepository) FindBest(ctx context.Context, limit int) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var products []domain.Product
	for _, p := range r.rows {
		products = append(products, p)
	}
	sortProducts(products, domain.OrderFavorite)
	return paginate(products, 0, limit), nil
}

func (r *MemoryProductRepository) FindByOwner(ctx context.Context, ownerID uint, params domain.ListParams) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var products []domain.Product
	for _, p := range r.rows {
		if p.OwnerID == ownerID && matchesKeyword(p, params.Keyword) {
			products = append(products, p)
		}
	}
	sortProducts(products, params.OrderBy)
	return paginate(products, params.Offset, params.Limit), nil
}

func (r *MemoryProductRepository) FindFavoritedBy(ctx context.Context, userID uint, offset, limit int) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var products []domain.Product
	ids := r.favoritedBy[userID]
	for i := len(ids) - 1; i >= 0; i-- {
		if p, ok := r.rows[ids[i]]; ok {
			products = append(products, p)
		}
	}
	return paginate(products, offset, limit), nil
}

// RecordFavorite appends to the per-user favorites ordering consulted by
// FindFavoritedBy. Tests call it alongside the favorite store.
func (r *MemoryProductRepository) RecordFavorite(userID, productID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.favoritedBy[userID] = append(r.favoritedBy[userID], productID)
}

func (r *MemoryProductRepository) Save(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[product.ID]; !ok {
		return apperror.NotFound("product not found")
	}
	r.rows[product.ID] = *product
	return nil
}

func (r *MemoryProductRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return apperror.NotFound("product not found")
	}
	delete(r.rows, id)
	return nil
}

func (r *MemoryProductRepository) Count(ctx context.Context, keyword string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, p := range r.rows {
		if matchesKeyword(p, keyword) {
			count++
		}
	}
	return count, nil
}
