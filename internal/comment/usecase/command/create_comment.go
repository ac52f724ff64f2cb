package command

import (
	"context"

	articledomain "github.com/pandamarket/api/internal/article/domain"
	"github.com/pandamarket/api/internal/comment/domain"
	productdomain "github.com/pandamarket/api/internal/product/domain"
	"github.com/pandamarket/api/kafka"
	"github.com/pandamarket/api/pkg/apperror"
	"github.com/pandamarket/api/pkg/logger"
)

const maxContentLen = 1000

// CreateCommentCommand posts a comment under a product or an article.
// Exactly one of ProductID and ArticleID must be set.
type CreateCommentCommand struct {
	OwnerID   uint
	ProductID *uint
	ArticleID *uint
	ParentID  *uint
	Content   string
}

// CreateCommentHandler handles comment creation, verifying the parent
// resource exists before inserting
type CreateCommentHandler struct {
	comments  domain.CommentRepository
	products  productdomain.ProductRepository
	articles  articledomain.ArticleRepository
	publisher *kafka.Publisher
}

// NewCreateCommentHandler creates a new create comment handler
func NewCreateCommentHandler(
	comments domain.CommentRepository,
	products productdomain.ProductRepository,
	articles articledomain.ArticleRepository,
	publisher *kafka.Publisher,
) *CreateCommentHandler {
	return &CreateCommentHandler{comments: comments, products: products, articles: articles, publisher: publisher}
}

func (h *CreateCommentHandler) Handle(ctx context.Context, cmd CreateCommentCommand) (*domain.Comment, error) {
	if cmd.Content == "" {
		return nil, apperror.Validation("content is required")
	}
	if len(cmd.Content) > maxContentLen {
		return nil, apperror.Validation("content must be at most 1000 characters")
	}
	if (cmd.ProductID == nil) == (cmd.ArticleID == nil) {
		return nil, apperror.Validation("comment must target exactly one of a product or an article")
	}

	targetType := "product"
	var targetID uint
	if cmd.ProductID != nil {
		targetID = *cmd.ProductID
		if _, err := h.products.FindByID(ctx, targetID); err != nil {
			return nil, err
		}
	} else {
		targetType = "article"
		targetID = *cmd.ArticleID
		if _, err := h.articles.FindByID(ctx, targetID); err != nil {
			return nil, err
		}
	}

	if cmd.ParentID != nil {
		parent, err := h.comments.FindByID(ctx, *cmd.ParentID)
		if err != nil {
			return nil, err
		}
		if !sameTarget(parent, cmd.ProductID, cmd.ArticleID) {
			return nil, apperror.Validation("parent comment belongs to a different resource")
		}
	}

	comment := &domain.Comment{
		OwnerID:   cmd.OwnerID,
		ProductID: cmd.ProductID,
		ArticleID: cmd.ArticleID,
		ParentID:  cmd.ParentID,
		Content:   cmd.Content,
	}
	if err := h.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	if err := h.publisher.PublishCommentCreated(ctx, kafka.CommentCreatedEvent{
		EventType:  kafka.EventTypeCommentCreated,
		CommentID:  comment.ID,
		TargetType: targetType,
		TargetID:   targetID,
		OwnerID:    cmd.OwnerID,
	}); err != nil {
		logger.Warn(ctx).Err(err).Uint("comment_id", comment.ID).Msg("Failed to publish comment event")
	}

	return comment, nil
}

func sameTarget(parent *domain.Comment, productID, articleID *uint) bool {
	if productID != nil {
		return parent.ProductID != nil && *parent.ProductID == *productID
	}
	return parent.ArticleID != nil && *parent.ArticleID == *articleID
}
