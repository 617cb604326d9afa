package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/halolight/admin-backend/internal/core/domain"
)

func invokePermission(t *testing.T, user *domain.User, resource, action string) (error, bool) {
	t.Helper()
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if user != nil {
		c.Set(ContextUserKey, user)
	}

	called := false
	err := RequirePermission(resource, action)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return err, called
}

func userWithPermissions(perms ...domain.Permission) *domain.User {
	return &domain.User{
		ID:     "user-1",
		Status: domain.StatusActive,
		Roles:  []domain.Role{{ID: "r1", Name: "tester", Permissions: perms}},
	}
}

func TestRequirePermissionAllows(t *testing.T) {
	cases := []struct {
		name string
		user *domain.User
	}{
		{"exact match", userWithPermissions(
			domain.Permission{ID: "p1", Action: "users:read", Resource: "users"},
		)},
		{"resource wildcard", userWithPermissions(
			domain.Permission{ID: "p2", Action: "users:*", Resource: "users"},
		)},
		{"global wildcard", userWithPermissions(
			domain.Permission{ID: "p3", Action: "*", Resource: "*"},
		)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err, called := invokePermission(t, tc.user, "users", "read")
			if err != nil {
				t.Fatalf("middleware error: %v", err)
			}
			if !called {
				t.Fatal("next handler not called")
			}
		})
	}
}

func TestRequirePermissionDenies(t *testing.T) {
	user := userWithPermissions(
		domain.Permission{ID: "p1", Action: "users:read", Resource: "users"},
	)

	err, called := invokePermission(t, user, "users", "delete")
	if called {
		t.Fatal("next handler called despite missing permission")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("err = %v, want HTTP 403", err)
	}
}

func TestRequirePermissionWithoutAuthenticatedUser(t *testing.T) {
	err, called := invokePermission(t, nil, "users", "read")
	if called {
		t.Fatal("next handler called without authenticated user")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v, want HTTP 401", err)
	}
}
