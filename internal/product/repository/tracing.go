package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pandamarket/api/internal/product/domain"
)

var tracer = otel.Tracer("product-repository")

// TracingProductRepository wraps a ProductRepository with OpenTelemetry spans
type TracingProductRepository struct {
	next domain.ProductRepository
}

// NewTracingProductRepository decorates the given repository with tracing
func NewTracingProductRepository(next domain.ProductRepository) *TracingProductRepository {
	return &TracingProductRepository{next: next}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (r *TracingProductRepository) Create(ctx context.Context, product *domain.Product) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("product.name", product.Name),
			attribute.Int64("product.price", product.Price),
		),
	)
	err := r.next.Create(ctx, product)
	if err == nil {
		span.SetAttributes(attribute.Int("product.id", int(product.ID)))
	}
	endSpan(span, err)
	return err
}

func (r *TracingProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(attribute.Int("product.id", int(id))),
	)
	product, err := r.next.FindByID(ctx, id)
	endSpan(span, err)
	return product, err
}

func (r *TracingProductRepository) FindAll(ctx context.Context, params domain.ListParams) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindAll",
		trace.WithAttributes(
			attribute.Int("query.limit", params.Limit),
			attribute.Int("query.offset", params.Offset),
			attribute.String("query.order_by", params.OrderBy),
			attribute.String("query.keyword", params.Keyword),
		),
	)
	products, err := r.next.FindAll(ctx, params)
	if err == nil {
		span.SetAttributes(attribute.Int("result.count", len(products)))
	}
	endSpan(span, err)
	return products, err
}

func (r *TracingProductRepository) FindBest(ctx context.Context, limit int) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindBest",
		trace.WithAttributes(attribute.Int("query.limit", limit)),
	)
	products, err := r.next.FindBest(ctx, limit)
	endSpan(span, err)
	return products, err
}

func (r *TracingProductRepository) FindByOwner(ctx context.Context, ownerID uint, params domain.ListParams) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByOwner",
		trace.WithAttributes(attribute.Int("owner.id", int(ownerID))),
	)
	products, err := r.next.FindByOwner(ctx, ownerID, params)
	endSpan(span, err)
	return products, err
}

func (r *TracingProductRepository) FindFavoritedBy(ctx context.Context, userID uint, offset, limit int) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindFavoritedBy",
		trace.WithAttributes(attribute.Int("user.id", int(userID))),
	)
	products, err := r.next.FindFavoritedBy(ctx, userID, offset, limit)
	endSpan(span, err)
	return products, err
}

func (r *TracingProductRepository) Save(ctx context.Context, product *domain.Product) error {
	ctx, span := tracer.Start(ctx, "repository.Save",
		trace.WithAttributes(attribute.Int("product.id", int(product.ID))),
	)
	err := r.next.Save(ctx, product)
	endSpan(span, err)
	return err
}

func (r *TracingProductRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "repository.Delete",
		trace.WithAttributes(attribute.Int("product.id", int(id))),
	)
	err := r.next.Delete(ctx, id)
	endSpan(span, err)
	return err
}

func (r *TracingProductRepository) Count(ctx context.Context, keyword string) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Count",
		trace.WithAttributes(attribute.String("query.keyword", keyword)),
	)
	count, err := r.next.Count(ctx, keyword)
	endSpan(span, err)
	return count, err
}
