package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/halolight/admin-backend/internal/core/domain"
	"github.com/halolight/admin-backend/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// UserService implements administrative user management on top of the
// credential store.
type UserService struct {
	users    ports.UserRepository
	hasher   *PasswordHasher
	activity ports.ActivityRecorder
	logger   zerolog.Logger
}

func NewUserService(users ports.UserRepository, hasher *PasswordHasher, activity ports.ActivityRecorder, logger zerolog.Logger) *UserService {
	return &UserService{users: users, hasher: hasher, activity: activity, logger: logger}
}

// List returns a page of users. Page defaults to 1, limit to 20 and is
// capped at 100.
func (s *UserService) List(ctx context.Context, filter ports.ListUsersFilter) (*ports.UserPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.UserPage{Users: users, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// Get loads one user with roles and permissions.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// Create adds a user account administratively. The account starts ACTIVE
// with no roles assigned.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &domain.User{
		Email:        input.Email,
		Username:     input.Username,
		Name:         input.Name,
		Phone:        input.Phone,
		Department:   input.Department,
		Position:     input.Position,
		PasswordHash: hash,
		Status:       domain.StatusActive,
	})
	if err != nil {
		return nil, err
	}

	s.record(user.ID, domain.ActivityCreate, user.Email)
	s.logger.Info().Str("user_id", user.ID).Msg("user created")
	return user, nil
}

// Update applies a partial update and returns the fresh user.
func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}

	s.record(id, domain.ActivityUpdate, "")
	return user, nil
}

// Delete removes a user account.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.record(id, domain.ActivityDelete, "")
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) record(userID, action, detail string) {
	if s.activity == nil {
		return
	}
	s.activity.Record(domain.ActivityEntry{UserID: userID, Action: action, Detail: detail})
}
