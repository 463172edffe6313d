package domain

import "time"

// TokenClaims is the data carried inside an access token. Claims are
// ephemeral: created at login, destroyed implicitly at expiry, never stored.
type TokenClaims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
