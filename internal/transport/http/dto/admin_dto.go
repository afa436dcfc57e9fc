package dto

import (
	"time"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/model"
)

type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin superadmin"`
}

type DeactivateUserRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
