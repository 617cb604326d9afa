package ports

import (
	"context"

	"github.com/halolight/admin-backend/internal/core/domain"
)

// CreateUserInput carries administrative user-creation data. Password is
// plaintext here; the service hashes it before persistence.
type CreateUserInput struct {
	Email      string
	Username   string
	Password   string
	Name       string
	Phone      string
	Department string
	Position   string
}

// UpdateUserInput holds optional field updates. Nil pointers leave the
// corresponding field untouched.
type UpdateUserInput struct {
	Name       *string
	Avatar     *string
	Status     *domain.UserStatus
	Department *string
	Position   *string
}

// UserPage is one page of a user listing.
type UserPage struct {
	Users []*domain.User
	Total int64
	Page  int
	Limit int
}

// UserService implements administrative user management.
type UserService interface {
	List(ctx context.Context, filter ListUsersFilter) (*UserPage, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
