package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/halolight/admin-backend/internal/core/domain"
	"github.com/halolight/admin-backend/internal/core/ports"
	"github.com/halolight/admin-backend/internal/core/token"
)

// stubUserLookup implements ports.UserRepository for the guard tests; only
// FindByID is exercised.
type stubUserLookup struct {
	users map[string]*domain.User
}

func (r *stubUserLookup) Create(_ context.Context, _ *domain.User) (*domain.User, error) {
	return nil, nil
}

func (r *stubUserLookup) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserLookup) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserLookup) List(_ context.Context, _ ports.ListUsersFilter) ([]*domain.User, int64, error) {
	return nil, 0, nil
}

func (r *stubUserLookup) Update(_ context.Context, _ string, _ ports.UpdateUserInput) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserLookup) Delete(_ context.Context, _ string) error { return nil }

func (r *stubUserLookup) UpdateLastLogin(_ context.Context, _ string, _ time.Time) error {
	return nil
}

func guardFixture(status domain.UserStatus) (echo.MiddlewareFunc, *token.Codec) {
	codec := token.NewCodec("test-secret", time.Minute)
	repo := &stubUserLookup{users: map[string]*domain.User{
		"user-1": {ID: "user-1", Email: "a@b.c", Status: status},
	}}
	return Auth(codec, repo), codec
}

func invokeGuard(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (error, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	err := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return err, called
}

func TestAuthAcceptsValidToken(t *testing.T) {
	mw, codec := guardFixture(domain.StatusActive)
	signed, err := codec.Issue("user-1", time.Now())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	err, called := invokeGuard(t, mw, "Bearer "+signed)
	if err != nil {
		t.Fatalf("guard error: %v", err)
	}
	if !called {
		t.Fatal("next handler not called")
	}
}

func TestAuthSetsUserInContext(t *testing.T) {
	mw, codec := guardFixture(domain.StatusActive)
	signed, _ := codec.Issue("user-1", time.Now())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	c := e.NewContext(req, httptest.NewRecorder())

	err := mw(func(c echo.Context) error {
		user, ok := c.Get(ContextUserKey).(*domain.User)
		if !ok || user.ID != "user-1" {
			t.Errorf("context user = %#v, want user-1", c.Get(ContextUserKey))
		}
		if id, _ := c.Get(ContextUserIDKey).(string); id != "user-1" {
			t.Errorf("context user id = %q, want user-1", id)
		}
		return c.NoContent(http.StatusOK)
	})(c)
	if err != nil {
		t.Fatalf("guard error: %v", err)
	}
}

func TestAuthRejections(t *testing.T) {
	mwActive, codec := guardFixture(domain.StatusActive)
	mwSuspended, suspCodec := guardFixture(domain.StatusSuspended)
	valid, _ := codec.Issue("user-1", time.Now())
	unknown, _ := codec.Issue("no-such-user", time.Now())
	forged, _ := token.NewCodec("other-secret", time.Minute).Issue("user-1", time.Now())
	expired, _ := codec.Issue("user-1", time.Now().Add(-2*time.Minute))
	forSuspended, _ := suspCodec.Issue("user-1", time.Now())

	cases := []struct {
		name   string
		mw     echo.MiddlewareFunc
		header string
		code   int
	}{
		{"missing header", mwActive, "", http.StatusUnauthorized},
		{"not bearer", mwActive, "Basic abc", http.StatusUnauthorized},
		{"garbage token", mwActive, "Bearer not.a.jwt", http.StatusUnauthorized},
		{"forged signature", mwActive, "Bearer " + forged, http.StatusUnauthorized},
		{"expired token", mwActive, "Bearer " + expired, http.StatusUnauthorized},
		{"unknown subject", mwActive, "Bearer " + unknown, http.StatusUnauthorized},
		{"suspended account", mwSuspended, "Bearer " + forSuspended, http.StatusUnauthorized},
		{"valid", mwActive, "Bearer " + valid, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err, called := invokeGuard(t, tc.mw, tc.header)
			if tc.code == 0 {
				if err != nil || !called {
					t.Fatalf("want pass-through, got err=%v called=%v", err, called)
				}
				return
			}
			if called {
				t.Fatal("next handler called on rejected request")
			}
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != tc.code {
				t.Fatalf("err = %v, want HTTP %d", err, tc.code)
			}
		})
	}
}
