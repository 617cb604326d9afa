package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/halolight/admin-backend/internal/core/domain"
	"github.com/halolight/admin-backend/internal/core/ports"
)

func newUserFixture() (*UserService, *stubUserRepo) {
	users := newStubUserRepo()
	svc := NewUserService(users, NewPasswordHasher(bcrypt.MinCost), nil, zerolog.Nop())
	return svc, users
}

func TestUserServiceCreateHashesPassword(t *testing.T) {
	svc, _ := newUserFixture()

	user, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email:    "ops@example.com",
		Username: "ops",
		Password: "plain-text-pass",
		Name:     "Ops Admin",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.PasswordHash == "plain-text-pass" {
		t.Fatal("password stored in plaintext")
	}
	if !NewPasswordHasher(bcrypt.MinCost).Verify("plain-text-pass", user.PasswordHash) {
		t.Fatal("stored hash does not verify against the original password")
	}
	if user.Status != domain.StatusActive {
		t.Fatalf("new user status = %s, want ACTIVE", user.Status)
	}
}

func TestUserServiceListDefaults(t *testing.T) {
	svc, _ := newUserFixture()

	page, err := svc.List(context.Background(), ports.ListUsersFilter{Page: 0, Limit: 0})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Page != 1 || page.Limit != defaultPageLimit {
		t.Fatalf("defaults = page %d limit %d, want 1/%d", page.Page, page.Limit, defaultPageLimit)
	}

	page, err = svc.List(context.Background(), ports.ListUsersFilter{Page: 2, Limit: 5000})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Limit != maxPageLimit {
		t.Fatalf("limit = %d, want capped at %d", page.Limit, maxPageLimit)
	}
}

func TestUserServiceGetUnknown(t *testing.T) {
	svc, _ := newUserFixture()

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("Get err = %v, want ErrUserNotFound", err)
	}
}
