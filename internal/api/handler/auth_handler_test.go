package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/halolight/admin-backend/internal/api/middleware"
	"github.com/halolight/admin-backend/internal/core/domain"
	"github.com/halolight/admin-backend/internal/core/ports"
)

// stubAuthService delegates to per-test function fields.
type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	refreshFn  func(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	logoutFn   func(ctx context.Context, userID, refreshToken string) error
	currentFn  func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	return s.refreshFn(ctx, refreshToken)
}

func (s *stubAuthService) Logout(ctx context.Context, userID, refreshToken string) error {
	return s.logoutFn(ctx, userID, refreshToken)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.currentFn(ctx, userID)
}

func newAuthTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sampleUser() *domain.User {
	return &domain.User{
		ID:       "u1",
		Email:    "alice@example.com",
		Username: "alice",
		Name:     "Alice",
		Status:   domain.StatusActive,
		Roles: []domain.Role{{
			ID:   "r1",
			Name: "admin",
			Permissions: []domain.Permission{
				{ID: "p1", Action: "*", Resource: "*"},
			},
		}},
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*ports.AuthResult, error) {
			if email != "alice@example.com" || password != "secret-pass" {
				return nil, domain.ErrInvalidCredentials
			}
			return &ports.AuthResult{
				Tokens: domain.TokenPair{AccessToken: "at", RefreshToken: "rt"},
				User:   sampleUser(),
			}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"secret-pass"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.AccessToken != "at" || resp.RefreshToken != "rt" {
		t.Fatalf("tokens = %q/%q, want at/rt", resp.AccessToken, resp.RefreshToken)
	}
	if len(resp.User.Permissions) != 1 || resp.User.Permissions[0].Action != "*" {
		t.Fatalf("user permissions = %+v, want effective set", resp.User.Permissions)
	}
}

func TestAuthHandlerLoginValidation(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newAuthTestContext(http.MethodPost, "/auth/login", `{"email":"not-an-email"}`)
	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want HTTP 400", err)
	}
}

func TestAuthHandlerLoginPropagatesServiceError(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(_ context.Context, _, _ string) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(svc)

	c, _ := newAuthTestContext(http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"wrong-pass"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials passthrough", err)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	var got ports.RegisterInput
	svc := &stubAuthService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
			got = input
			return &ports.AuthResult{
				Tokens: domain.TokenPair{AccessToken: "at", RefreshToken: "rt"},
				User:   sampleUser(),
			}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(http.MethodPost, "/auth/register",
		`{"email":"alice@example.com","username":"alice","password":"longenough","name":"Alice"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if got.Email != "alice@example.com" || got.Username != "alice" {
		t.Fatalf("service received %+v", got)
	}
}

func TestAuthHandlerRegisterRejectsShortPassword(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newAuthTestContext(http.MethodPost, "/auth/register",
		`{"email":"alice@example.com","username":"alice","password":"short","name":"Alice"}`)
	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want HTTP 400", err)
	}
}

func TestAuthHandlerRefresh(t *testing.T) {
	svc := &stubAuthService{
		refreshFn: func(_ context.Context, refreshToken string) (*domain.TokenPair, error) {
			if refreshToken != "old-token" {
				return nil, domain.ErrInvalidRefreshToken
			}
			return &domain.TokenPair{AccessToken: "new-at", RefreshToken: "new-rt"}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(http.MethodPost, "/auth/refresh", `{"refreshToken":"old-token"}`)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	var resp tokenPairResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.AccessToken != "new-at" || resp.RefreshToken != "new-rt" {
		t.Fatalf("tokens = %q/%q, want new-at/new-rt", resp.AccessToken, resp.RefreshToken)
	}
}

func TestAuthHandlerLogout(t *testing.T) {
	var gotUserID, gotToken string
	svc := &stubAuthService{
		logoutFn: func(_ context.Context, userID, refreshToken string) error {
			gotUserID, gotToken = userID, refreshToken
			return nil
		},
	}
	h := NewAuthHandler(svc)

	t.Run("single session", func(t *testing.T) {
		c, rec := newAuthTestContext(http.MethodPost, "/auth/logout", `{"refreshToken":"rt"}`)
		c.Set(middleware.ContextUserKey, sampleUser())
		if err := h.Logout(c); err != nil {
			t.Fatalf("Logout: %v", err)
		}
		if rec.Code != http.StatusOK || gotUserID != "u1" || gotToken != "rt" {
			t.Fatalf("logout called with %q/%q, status %d", gotUserID, gotToken, rec.Code)
		}
	})

	t.Run("no body revokes all", func(t *testing.T) {
		c, _ := newAuthTestContext(http.MethodPost, "/auth/logout", "")
		c.Set(middleware.ContextUserKey, sampleUser())
		if err := h.Logout(c); err != nil {
			t.Fatalf("Logout: %v", err)
		}
		if gotToken != "" {
			t.Fatalf("token = %q, want empty for global logout", gotToken)
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		c, _ := newAuthTestContext(http.MethodPost, "/auth/logout", "")
		err := h.Logout(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Fatalf("err = %v, want HTTP 401", err)
		}
	})
}

func TestAuthHandlerMe(t *testing.T) {
	svc := &stubAuthService{
		currentFn: func(_ context.Context, userID string) (*domain.User, error) {
			if userID != "u1" {
				return nil, domain.ErrUserNotFound
			}
			return sampleUser(), nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(http.MethodGet, "/auth/me", "")
	c.Set(middleware.ContextUserKey, sampleUser())
	if err := h.Me(c); err != nil {
		t.Fatalf("Me: %v", err)
	}

	var resp userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "u1" || resp.Email != "alice@example.com" {
		t.Fatalf("user = %+v", resp)
	}
}
