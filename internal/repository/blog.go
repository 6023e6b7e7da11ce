package repository

import (
	"context"

	"bloglist/internal/domain"
)

// BlogRepository exposes persistence operations for Blog entries.
type BlogRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, blog *domain.Blog) (string, error)
	Get(ctx context.Context, id string) (*domain.Blog, error)
	List(ctx context.Context) ([]domain.Blog, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.Blog, error)
	Update(ctx context.Context, id string, patch domain.BlogPatch) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
