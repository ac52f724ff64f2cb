package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pandamarket/api/internal/comment/domain"
	"github.com/pandamarket/api/pkg/apperror"
)

// MemoryCommentRepository is an in-memory CommentRepository for tests
type MemoryCommentRepository struct {
	mu       sync.RWMutex
	comments map[uint]domain.Comment
	nextID   uint
}

// NewMemoryCommentRepository creates an empty in-memory comment repository
func NewMemoryCommentRepository() *MemoryCommentRepository {
	return &MemoryCommentRepository{comments: make(map[uint]domain.Comment), nextID: 1}
}

func (r *MemoryCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	comment.ID = r.nextID
	r.nextID++
	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	r.comments[comment.ID] = *comment
	return nil
}

func (r *MemoryCommentRepository) FindByID(ctx context.Context, id uint) (*domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comment, ok := r.comments[id]
	if !ok {
		return nil, apperror.NotFound("comment not found")
	}
	out := comment
	return &out, nil
}

func (r *MemoryCommentRepository) FindByProduct(ctx context.Context, productID uint, params domain.ListParams) ([]domain.Comment, error) {
	return r.findPage(func(c domain.Comment) bool {
		return c.ProductID != nil && *c.ProductID == productID
	}, params), nil
}

func (r *MemoryCommentRepository) FindByArticle(ctx context.Context, articleID uint, params domain.ListParams) ([]domain.Comment, error) {
	return r.findPage(func(c domain.Comment) bool {
		return c.ArticleID != nil && *c.ArticleID == articleID
	}, params), nil
}

func (r *MemoryCommentRepository) findPage(match func(domain.Comment) bool, params domain.ListParams) []domain.Comment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Comment
	for _, c := range r.comments {
		if !match(c) {
			continue
		}
		if params.Cursor > 0 && c.ID >= params.Cursor {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if params.Limit > 0 && len(out) > params.Limit {
		out = out[:params.Limit]
	}
	return out
}

func (r *MemoryCommentRepository) Save(ctx context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[comment.ID]; !ok {
		return apperror.NotFound("comment not found")
	}
	comment.UpdatedAt = time.Now()
	r.comments[comment.ID] = *comment
	return nil
}

func (r *MemoryCommentRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[id]; !ok {
		return apperror.NotFound("comment not found")
	}
	delete(r.comments, id)
	return nil
}
