// Package bootstrap seeds the development environment with the reserved
// "admin" role and the first admin identity. It runs once at startup and is
// idempotent: existing roles and users are left untouched.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ibovespa/catalog-api/internal/core/domain"
	"github.com/ibovespa/catalog-api/internal/core/ports"
	"github.com/ibovespa/catalog-api/internal/core/service"
	"github.com/ibovespa/catalog-api/internal/infrastructure/config"
)

// SeedAdmin ensures the admin role exists and creates the bootstrap identity
// from configuration.
func SeedAdmin(
	ctx context.Context,
	cfg *config.Config,
	roles ports.RoleRepository,
	users ports.UserRepository,
	hasher *service.PasswordHasher,
	log zerolog.Logger,
) error {
	role, err := roles.FindByName(ctx, domain.RoleAdmin)
	if errors.Is(err, domain.ErrRoleNotFound) {
		now := time.Now().UTC()
		role, err = roles.Create(ctx, &domain.Role{
			ID:          uuid.NewString(),
			Name:        domain.RoleAdmin,
			Description: "system administrator",
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("bootstrap: create admin role: %w", err)
		}
		log.Info().Str("role", role.Name).Msg("admin role created")
	} else if err != nil {
		return fmt.Errorf("bootstrap: find admin role: %w", err)
	}

	if _, err := users.FindByUsername(ctx, cfg.FirstLogin); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("bootstrap: find first user: %w", err)
	}

	hash, err := hasher.Hash(cfg.FirstPassword)
	if err != nil {
		return fmt.Errorf("bootstrap: hash first password: %w", err)
	}

	now := time.Now().UTC()
	user, err := users.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Username:     cfg.FirstLogin,
		Email:        cfg.FirstEmail,
		PasswordHash: hash,
		RoleID:       role.ID,
		Disabled:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// Concurrent replicas may seed the same user; not a failure.
		if errors.Is(err, domain.ErrUserExists) {
			return nil
		}
		return fmt.Errorf("bootstrap: create first user: %w", err)
	}

	log.Info().Str("username", user.Username).Msg("bootstrap admin user created")
	return nil
}
