package service

import "golang.org/x/crypto/bcrypt"

// PasswordHasher wraps bcrypt. The produced hash is self-describing (salt
// and cost are embedded), so Verify needs no side-channel lookup, and the
// final digest comparison inside bcrypt is constant-time.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcrypt.DefaultCost}
}

func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored hash. A mismatch is a
// boolean outcome, never an error.
func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
