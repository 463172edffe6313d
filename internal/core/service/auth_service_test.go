package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ibovespa/catalog-api/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
	err   error
}

func (s *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := s.users[user.Username]; ok {
		return nil, domain.ErrUserExists
	}
	s.users[user.Username] = user
	return user, nil
}

func (s *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func seededUserRepo(t *testing.T, hasher *PasswordHasher, username, password string, disabled bool) *stubUserRepo {
	t.Helper()
	hash, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &stubUserRepo{users: map[string]*domain.User{
		username: {Username: username, PasswordHash: hash, Disabled: disabled},
	}}
}

func TestAuthService_Login(t *testing.T) {
	hasher := NewPasswordHasher()
	codec := NewTokenCodec("secret", time.Hour)
	repo := seededUserRepo(t, hasher, "admin", "s3cret", false)
	svc := NewAuthService(repo, hasher, codec, zerolog.Nop())

	token, err := svc.Login(context.Background(), "admin", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.Subject != "admin" {
		t.Fatalf("expected token subject admin, got %q", claims.Subject)
	}
}

func TestAuthService_Login_Failures(t *testing.T) {
	hasher := NewPasswordHasher()
	codec := NewTokenCodec("secret", time.Hour)
	repo := seededUserRepo(t, hasher, "admin", "s3cret", false)
	svc := NewAuthService(repo, hasher, codec, zerolog.Nop())

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "wrong"},
		{"unknown user", "ghost", "s3cret"},
		{"empty username", "", "s3cret"},
		{"empty password", "admin", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Login(context.Background(), tc.username, tc.password); !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthService_Login_DisabledUserStillGetsToken(t *testing.T) {
	hasher := NewPasswordHasher()
	codec := NewTokenCodec("secret", time.Hour)
	repo := seededUserRepo(t, hasher, "admin", "s3cret", true)
	svc := NewAuthService(repo, hasher, codec, zerolog.Nop())

	// The account-state check belongs to the guard, not to login.
	if _, err := svc.Login(context.Background(), "admin", "s3cret"); err != nil {
		t.Fatalf("login for a disabled account must still succeed, got %v", err)
	}
}

func TestAuthService_Login_RepoError(t *testing.T) {
	hasher := NewPasswordHasher()
	codec := NewTokenCodec("secret", time.Hour)
	repoErr := errors.New("mongo down")
	svc := NewAuthService(&stubUserRepo{err: repoErr}, hasher, codec, zerolog.Nop())

	if _, err := svc.Login(context.Background(), "admin", "s3cret"); !errors.Is(err, repoErr) {
		t.Fatalf("expected repository error to pass through, got %v", err)
	}
}
