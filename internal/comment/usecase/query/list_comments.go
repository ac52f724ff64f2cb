package query

import (
	"context"

	"github.com/pandamarket/api/internal/comment/domain"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// ListCommentsQuery fetches a cursor page of comments under one parent
// resource, newest first
type ListCommentsQuery struct {
	ProductID *uint
	ArticleID *uint
	Cursor    uint
	Limit     int
}

// ListCommentsResult carries the page and the cursor for the next one.
// NextCursor is nil when the page was not full.
type ListCommentsResult struct {
	NextCursor *uint            `json:"nextCursor"`
	List       []domain.Comment `json:"list"`
}

type ListCommentsHandler struct {
	repo domain.CommentRepository
}

func NewListCommentsHandler(repo domain.CommentRepository) *ListCommentsHandler {
	return &ListCommentsHandler{repo: repo}
}

func (h *ListCommentsHandler) Handle(ctx context.Context, q ListCommentsQuery) (*ListCommentsResult, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	params := domain.ListParams{Cursor: q.Cursor, Limit: limit}

	var (
		comments []domain.Comment
		err      error
	)
	if q.ProductID != nil {
		comments, err = h.repo.FindByProduct(ctx, *q.ProductID, params)
	} else if q.ArticleID != nil {
		comments, err = h.repo.FindByArticle(ctx, *q.ArticleID, params)
	}
	if err != nil {
		return nil, err
	}

	result := &ListCommentsResult{List: comments}
	if result.List == nil {
		result.List = []domain.Comment{}
	}
	if len(comments) == limit {
		next := comments[len(comments)-1].ID
		result.NextCursor = &next
	}
	return result, nil
}
