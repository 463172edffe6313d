package domain

import "errors"

var (
	// ErrInvalidCredentials covers both "no such user" and "wrong password"
	// so the login response cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrInvalidToken covers every verification failure: bad structure, bad
	// signature, expired, or a subject that no longer exists. Callers cannot
	// tell which check failed.
	ErrInvalidToken = errors.New("could not validate credentials")

	// ErrInactiveUser means the token and subject are valid but the account
	// is disabled.
	ErrInactiveUser = errors.New("inactive user")

	// ErrUserNotFound is a repository-level signal. Services collapse it into
	// ErrInvalidCredentials (login) or ErrInvalidToken (resolution) before it
	// can reach a client.
	ErrUserNotFound = errors.New("user not found")

	ErrUserExists   = errors.New("user already exists")
	ErrRoleNotFound = errors.New("role not found")

	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryNotFound = errors.New("category not found")

	ErrRegistrationExists   = errors.New("registration already exists")
	ErrRegistrationNotFound = errors.New("registration not found")

	ErrNotEnoughData   = errors.New("not enough data to train the model")
	ErrModelNotTrained = errors.New("model has not been trained")
)
