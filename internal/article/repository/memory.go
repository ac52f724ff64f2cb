package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/pandamarket/api/internal/article/domain"
	"github.com/pandamarket/api/internal/favorite"
	"github.com/pandamarket/api/pkg/apperror"
)

// MemoryArticleRepository is a map-backed ArticleRepository for tests.
// It also implements the favorite in-memory store's TargetStore.
type MemoryArticleRepository struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]domain.Article
}

func NewMemoryArticleRepository() *MemoryArticleRepository {
	return &MemoryArticleRepository{nextID: 1, rows: make(map[uint]domain.Article)}
}

// AdjustFavoriteCount implements inmemory.TargetStore
func (r *MemoryArticleRepository) AdjustFavoriteCount(target favorite.Target, delta int) error {
	if target.Type != favorite.TargetArticle {
		return apperror.NotFound("article not found")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	article, ok := r.rows[target.ID]
	if !ok {
		return apperror.NotFound("article not found")
	}
	article.FavoriteCount += int64(delta)
	r.rows[target.ID] = article
	return nil
}

func (r *MemoryArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	article.ID = r.nextID
	r.nextID++
	r.rows[article.ID] = *article
	return nil
}

func (r *MemoryArticleRepository) FindByID(ctx context.Context, id uint) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	article, ok := r.rows[id]
	if !ok {
		return nil, apperror.NotFound("article not found")
	}
	return &article, nil
}

func (r *MemoryArticleRepository) matches(a domain.Article, keyword string) bool {
	if keyword == "" {
		return true
	}
	kw := strings.ToLower(keyword)
	return strings.Contains(strings.ToLower(a.Title), kw) ||
		strings.Contains(strings.ToLower(a.Content), kw)
}

func (r *MemoryArticleRepository) FindAll(ctx context.Context, params domain.ListParams) ([]domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var articles []domain.Article
	for _, a := range r.rows {
		if r.matches(a, params.Keyword) {
			articles = append(articles, a)
		}
	}

	sort.Slice(articles, func(i, j int) bool {
		if params.OrderBy == domain.OrderFavorite {
			if articles[i].FavoriteCount != articles[j].FavoriteCount {
				return articles[i].FavoriteCount > articles[j].FavoriteCount
			}
			return articles[i].ID > articles[j].ID
		}
		if !articles[i].CreatedAt.Equal(articles[j].CreatedAt) {
			return articles[i].CreatedAt.After(articles[j].CreatedAt)
		}
		return articles[i].ID > articles[j].ID
	})

	if params.Offset >= len(articles) {
		return nil, nil
	}
	articles = articles[params.Offset:]
	if params.Limit > 0 && params.Limit < len(articles) {
		articles = articles[:params.Limit]
	}
	return articles, nil
}

func (r *MemoryArticleRepository) FindBest(ctx context.Context, limit int) ([]domain.Article, error) {
	return r.FindAll(ctx, domain.ListParams{Limit: limit, OrderBy: domain.OrderFavorite})
}

func (r *MemoryArticleRepository) Save(ctx context.Context, article *domain.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[article.ID]; !ok {
		return apperror.NotFound("article not found")
	}
	r.rows[article.ID] = *article
	return nil
}

func (r *MemoryArticleRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return apperror.NotFound("article not found")
	}
	delete(r.rows, id)
	return nil
}

func (r *MemoryArticleRepository) Count(ctx context.Context, keyword string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, a := range r.rows {
		if r.matches(a, keyword) {
			count++
		}
	}
	return count, nil
}
