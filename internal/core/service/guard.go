package service

import (
	"context"
	"errors"

	"github.com/ibovespa/catalog-api/internal/core/domain"
	"github.com/ibovespa/catalog-api/internal/core/ports"
)

// AccessGuard composes token verification, identity resolution, and the
// account-state check into the single gate every protected operation uses.
type AccessGuard struct {
	verifier ports.TokenVerifier
	users    ports.UserRepository
}

func NewAccessGuard(verifier ports.TokenVerifier, users ports.UserRepository) *AccessGuard {
	return &AccessGuard{verifier: verifier, users: users}
}

// Authorize resolves a bearer token to an active identity. A token whose
// subject no longer exists fails identically to a forged one; only a
// disabled account is distinguishable, via domain.ErrInactiveUser. A
// rejection is terminal for the request, nothing is retried.
func (g *AccessGuard) Authorize(ctx context.Context, token string) (*domain.User, error) {
	claims, err := g.verifier.Verify(token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := g.users.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}

	if user.Disabled {
		return nil, domain.ErrInactiveUser
	}
	return user, nil
}
