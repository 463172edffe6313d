package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ibovespa/catalog-api/internal/core/domain"
)

// TokenCodec issues and verifies HS256 bearer tokens. The secret is fixed at
// construction and never mutated, so a single codec is safe for concurrent
// use; rotation requires a restart.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl == 0 {
		ttl = 30 * time.Minute
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// Issue signs claims {username, iat, exp} for the given identity.
func (c *TokenCodec) Issue(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(c.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify checks structure, signature, and expiry. The three causes are
// deliberately indistinguishable: every failure is domain.ErrInvalidToken.
func (c *TokenCodec) Verify(token string) (*domain.TokenClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	username, _ := claims["username"].(string)
	if username == "" {
		return nil, domain.ErrInvalidToken
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, domain.ErrInvalidToken
	}

	out := &domain.TokenClaims{
		Subject:   username,
		ExpiresAt: exp.Time,
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	return out, nil
}
