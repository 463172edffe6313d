package ports

import (
	"context"

	"github.com/ibovespa/catalog-api/internal/core/domain"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	List(ctx context.Context, limit int) ([]*domain.Category, error)
	// FindByName returns domain.ErrCategoryNotFound when no category matches.
	FindByName(ctx context.Context, name string) (*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
}

// CategoryService defines use-case operations for categories.
type CategoryService interface {
	ListCategories(ctx context.Context, limit int) ([]*domain.Category, error)
	// CreateCategory fails with domain.ErrCategoryExists on duplicate names.
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
}
