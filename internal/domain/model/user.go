package model

import (
	"time"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/enums"
)

type User struct {
	ID                 int64      `json:"id"`
	Email              string     `json:"email"`
	PasswordHash       string     `json:"-"`
	Role               enums.Role `json:"role"`
	IsActive           bool       `json:"is_active"`
	DeactivationReason *string    `json:"deactivation_reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
