package domain

import "time"

// UserStatus is the lifecycle state of an account. Only ACTIVE users may
// authenticate or present tokens.
type UserStatus string

const (
	StatusActive    UserStatus = "ACTIVE"
	StatusInactive  UserStatus = "INACTIVE"
	StatusSuspended UserStatus = "SUSPENDED"
)

// User models an authenticated actor in the system.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Username     string     `json:"username"`
	Name         string     `json:"name"`
	Avatar       string     `json:"avatar,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	PasswordHash string     `json:"-"`
	Status       UserStatus `json:"status"`
	Department   string     `json:"department,omitempty"`
	Position     string     `json:"position,omitempty"`
	Roles        []Role     `json:"roles,omitempty"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Permissions returns the user's effective permission set, deduplicated
// across all assigned roles.
func (u *User) Permissions() []Permission {
	return EffectivePermissions(u.Roles)
}

// Can reports whether the user is authorized for (resource, action).
func (u *User) Can(resource, action string) bool {
	return Authorize(u.Permissions(), resource, action)
}
