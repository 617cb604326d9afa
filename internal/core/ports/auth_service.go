package ports

import (
	"context"

	"github.com/halolight/admin-backend/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Email    string
	Username string
	Password string
	Name     string
	Phone    string
}

// AuthResult is returned by Register and Login: a fresh token pair plus the
// authenticated user with roles and permissions loaded.
type AuthResult struct {
	Tokens domain.TokenPair
	User   *domain.User
}

// AuthService implements the session lifecycle: registration, login,
// refresh rotation, logout and current-user lookup.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Refresh redeems a refresh token exactly once, returning a new pair.
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	// Logout revokes one refresh token when given, or every token owned by
	// the user when refreshToken is empty.
	Logout(ctx context.Context, userID, refreshToken string) error
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}
