package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/ibovespa/catalog-api/internal/core/domain"
	"github.com/ibovespa/catalog-api/internal/core/ports"
)

// AuthService implements the login flow.
type AuthService struct {
	users  ports.UserRepository
	hasher *PasswordHasher
	issuer ports.TokenIssuer
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher *PasswordHasher, issuer ports.TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, issuer: issuer, log: log}
}

// Login verifies credentials and issues a bearer token. "No such user" and
// "wrong password" both surface as domain.ErrInvalidCredentials so the
// response cannot distinguish them.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return "", err
	}

	s.log.Info().Str("username", user.Username).Msg("login succeeded")
	return token, nil
}
