package ports

import (
	"context"

	"github.com/ibovespa/catalog-api/internal/core/domain"
)

// UserRepository defines persistence for identities. The auth core only
// reads; creation happens in bootstrap/registration flows.
type UserRepository interface {
	// FindByUsername returns domain.ErrUserNotFound when no identity matches.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

// RoleRepository defines persistence for roles.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	FindByID(ctx context.Context, id string) (*domain.Role, error)
	Create(ctx context.Context, role *domain.Role) (*domain.Role, error)
}
