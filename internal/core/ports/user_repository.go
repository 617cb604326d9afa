package ports

import (
	"context"
	"time"

	"github.com/halolight/admin-backend/internal/core/domain"
)

// ListUsersFilter carries all query parameters for listing users.
type ListUsersFilter struct {
	Search string // optional: partial match on email, username or name
	Status string // optional: filter by lifecycle status
	Role   string // optional: filter by role name
	Page   int    // 1-based
	Limit  int    // max rows per page (capped at 100 by service)
}

// UserRepository defines persistence operations for user accounts.
// FindByID and FindByEmail load the user together with its roles and their
// permissions; list queries omit the role graph.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns a page of users matching filter and the total count.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	Update(ctx context.Context, id string, update UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}
