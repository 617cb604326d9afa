package handler

import (
	"time"

	"github.com/halolight/admin-backend/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"     validate:"required"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type logoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// --- Response types ---

type userResponse struct {
	ID          string              `json:"id"`
	Email       string              `json:"email"`
	Username    string              `json:"username"`
	Name        string              `json:"name"`
	Avatar      string              `json:"avatar,omitempty"`
	Phone       string              `json:"phone,omitempty"`
	Status      string              `json:"status"`
	Roles       []domain.Role       `json:"roles"`
	Permissions []domain.Permission `json:"permissions"`
	LastLoginAt *time.Time          `json:"lastLoginAt,omitempty"`
}

type authResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         userResponse `json:"user"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// toUserResponse flattens a domain user into the wire shape, with roles and
// the deduplicated effective permission set. Empty slices render as [] so
// clients never see null.
func toUserResponse(u *domain.User) userResponse {
	roles := u.Roles
	if roles == nil {
		roles = []domain.Role{}
	}
	perms := u.Permissions()
	if perms == nil {
		perms = []domain.Permission{}
	}
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		Name:        u.Name,
		Avatar:      u.Avatar,
		Phone:       u.Phone,
		Status:      string(u.Status),
		Roles:       roles,
		Permissions: perms,
		LastLoginAt: u.LastLoginAt,
	}
}
