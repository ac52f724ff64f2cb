package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pandamarket/api/internal/user/domain"
)

var tracer = otel.Tracer("user-repository")

// TracingUserRepository wraps a UserRepository with OpenTelemetry spans
type TracingUserRepository struct {
	next domain.UserRepository
}

// NewTracingUserRepository decorates the given repository with tracing
func NewTracingUserRepository(next domain.UserRepository) *TracingUserRepository {
	return &TracingUserRepository{next: next}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (r *TracingUserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(attribute.String("user.nickname", user.Nickname)),
	)
	err := r.next.Create(ctx, user)
	if err == nil {
		span.SetAttributes(attribute.Int("user.id", int(user.ID)))
	}
	endSpan(span, err)
	return err
}

func (r *TracingUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(attribute.Int("user.id", int(id))),
	)
	user, err := r.next.FindByID(ctx, id)
	endSpan(span, err)
	return user, err
}

func (r *TracingUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByEmail")
	user, err := r.next.FindByEmail(ctx, email)
	endSpan(span, err)
	return user, err
}

func (r *TracingUserRepository) FindByProvider(ctx context.Context, provider, providerID string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByProvider",
		trace.WithAttributes(attribute.String("oauth.provider", provider)),
	)
	user, err := r.next.FindByProvider(ctx, provider, providerID)
	endSpan(span, err)
	return user, err
}

func (r *TracingUserRepository) Save(ctx context.Context, user *domain.User) error {
	ctx, span := tracer.Start(ctx, "repository.Save",
		trace.WithAttributes(attribute.Int("user.id", int(user.ID))),
	)
	err := r.next.Save(ctx, user)
	endSpan(span, err)
	return err
}
