package domain

import "errors"

// Sentinel errors shared across services and repositories. Handlers never
// build status codes from these directly; the API error handler owns the
// mapping.
var (
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so a login response never reveals whether an account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountNotActive is returned when the password checks out but the
	// account status is not ACTIVE.
	ErrAccountNotActive = errors.New("account is not active")

	// ErrInvalidRefreshToken collapses every refresh failure (bad
	// signature, expired, revoked, already rotated) into one outcome.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrTooManyAttempts is returned when the login throttle trips.
	ErrTooManyAttempts = errors.New("too many login attempts")

	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrForbidden    = errors.New("access forbidden")
)
