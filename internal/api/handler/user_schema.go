package handler

import "github.com/halolight/admin-backend/internal/core/ports"

// --- Request types ---

type listUsersRequest struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Search string `query:"search"`
	Status string `query:"status" validate:"omitempty,oneof=ACTIVE INACTIVE SUSPENDED"`
	Role   string `query:"role"`
}

type createUserRequest struct {
	Email      string `json:"email"    validate:"required,email"`
	Username   string `json:"username" validate:"required,min=3"`
	Password   string `json:"password" validate:"required,min=8"`
	Name       string `json:"name"     validate:"required"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

type updateUserRequest struct {
	Name       *string `json:"name"`
	Avatar     *string `json:"avatar"`
	Status     *string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE SUSPENDED"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
}

// --- Response types ---

type userListResponse struct {
	Users []userResponse `json:"users"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

func toUserListResponse(page *ports.UserPage) userListResponse {
	out := userListResponse{
		Users: make([]userResponse, 0, len(page.Users)),
		Total: page.Total,
		Page:  page.Page,
		Limit: page.Limit,
	}
	for _, u := range page.Users {
		out.Users = append(out.Users, toUserResponse(u))
	}
	return out
}
