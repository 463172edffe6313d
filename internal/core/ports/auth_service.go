package ports

import (
	"context"

	"github.com/ibovespa/catalog-api/internal/core/domain"
)

// AuthService implements the login flow: credential lookup, password
// verification, token issuance.
type AuthService interface {
	// Login returns a signed bearer token. Unknown usernames and wrong
	// passwords both fail with domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, error)
}

// TokenIssuer builds a signed, time-bounded token for a verified identity.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// TokenVerifier validates a token's structure, signature, and expiry.
// Every failure mode collapses to domain.ErrInvalidToken. Verification is a
// pure function of (token, secret, current time) and is safe for concurrent
// use.
type TokenVerifier interface {
	Verify(token string) (*domain.TokenClaims, error)
}

// AccessGuard is the single per-request gate protected operations depend on:
// verify the token, resolve its subject to a live identity, and reject
// disabled accounts with domain.ErrInactiveUser.
type AccessGuard interface {
	Authorize(ctx context.Context, token string) (*domain.User, error)
}
