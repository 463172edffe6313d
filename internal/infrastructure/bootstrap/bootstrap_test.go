package bootstrap

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ibovespa/catalog-api/internal/core/domain"
	"github.com/ibovespa/catalog-api/internal/core/service"
	"github.com/ibovespa/catalog-api/internal/infrastructure/config"
)

type memRoleRepo struct {
	byName map[string]*domain.Role
}

func (r *memRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	role, ok := r.byName[name]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	return role, nil
}

func (r *memRoleRepo) FindByID(_ context.Context, id string) (*domain.Role, error) {
	for _, role := range r.byName {
		if role.ID == id {
			return role, nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (r *memRoleRepo) Create(_ context.Context, role *domain.Role) (*domain.Role, error) {
	r.byName[role.Name] = role
	return role, nil
}

type memUserRepo struct {
	byUsername map[string]*domain.User
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *memUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := r.byUsername[u.Username]; ok {
		return nil, domain.ErrUserExists
	}
	r.byUsername[u.Username] = u
	return u, nil
}

func (r *memUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.byUsername))
	for _, u := range r.byUsername {
		out = append(out, u)
	}
	return out, nil
}

func seedConfig() *config.Config {
	return &config.Config{
		FirstLogin:    "admin",
		FirstPassword: "s3cret",
		FirstEmail:    "admin@localhost",
	}
}

func TestSeedAdmin_CreatesRoleAndUser(t *testing.T) {
	roles := &memRoleRepo{byName: map[string]*domain.Role{}}
	users := &memUserRepo{byUsername: map[string]*domain.User{}}
	hasher := service.NewPasswordHasher()

	if err := SeedAdmin(context.Background(), seedConfig(), roles, users, hasher, zerolog.Nop()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	role, err := roles.FindByName(context.Background(), domain.RoleAdmin)
	if err != nil {
		t.Fatalf("admin role not created: %v", err)
	}
	user, err := users.FindByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("admin user not created: %v", err)
	}
	if user.RoleID != role.ID {
		t.Fatalf("user not linked to admin role")
	}
	if user.Disabled {
		t.Fatalf("bootstrap user must be active")
	}
	if !hasher.Verify("s3cret", user.PasswordHash) {
		t.Fatalf("stored hash does not match the configured password")
	}
}

func TestSeedAdmin_Idempotent(t *testing.T) {
	roles := &memRoleRepo{byName: map[string]*domain.Role{}}
	users := &memUserRepo{byUsername: map[string]*domain.User{}}
	hasher := service.NewPasswordHasher()

	if err := SeedAdmin(context.Background(), seedConfig(), roles, users, hasher, zerolog.Nop()); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	first, _ := users.FindByUsername(context.Background(), "admin")

	if err := SeedAdmin(context.Background(), seedConfig(), roles, users, hasher, zerolog.Nop()); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	second, _ := users.FindByUsername(context.Background(), "admin")

	if first != second {
		t.Fatalf("second run must leave the existing user untouched")
	}
	if len(users.byUsername) != 1 {
		t.Fatalf("expected exactly one user, got %d", len(users.byUsername))
	}
}
