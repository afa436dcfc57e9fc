package dto

import (
	"time"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/model"
)

type ProfileRequest struct {
	Name          string `json:"name" validate:"required,max=120"`
	Gender        string `json:"gender" validate:"omitempty,oneof=female male other"`
	Birthdate     string `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
	City          string `json:"city" validate:"max=100"`
	Occupation    string `json:"occupation" validate:"max=150"`
	Education     string `json:"education" validate:"max=150"`
	MaritalStatus string `json:"marital_status" validate:"omitempty,oneof=single married widowed divorced"`
	About         string `json:"about" validate:"max=5000"`
	PhotoURL      string `json:"photo_url" validate:"omitempty,url,max=500"`
}

type DeactivateProfileRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
	Review string `json:"review" validate:"max=2000"`
}

type VerifyProfileRequest struct {
	Verified bool `json:"verified"`
}

type ProfileResponse struct {
	UserID        int64  `json:"user_id"`
	Name          string `json:"name"`
	Gender        string `json:"gender,omitempty"`
	Birthdate     string `json:"birthdate,omitempty"`
	City          string `json:"city,omitempty"`
	Occupation    string `json:"occupation,omitempty"`
	Education     string `json:"education,omitempty"`
	MaritalStatus string `json:"marital_status,omitempty"`
	About         string `json:"about,omitempty"`
	PhotoURL      string `json:"photo_url,omitempty"`
	IsActive      bool   `json:"is_active"`
	IsVerified    bool   `json:"is_verified"`
	CreatedAt     string `json:"created_at"`
}

type ProfileListResponse struct {
	Items    []ProfileResponse `json:"items"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Total    int               `json:"total"`
}

func NewProfileResponse(p model.Profile) ProfileResponse {
	birthdate := ""
	if p.Birthdate != nil {
		birthdate = p.Birthdate.Format("2006-01-02")
	}
	return ProfileResponse{
		UserID:        p.UserID,
		Name:          p.Name,
		Gender:        p.Gender,
		Birthdate:     birthdate,
		City:          p.City,
		Occupation:    p.Occupation,
		Education:     p.Education,
		MaritalStatus: p.MaritalStatus,
		About:         p.About,
		PhotoURL:      p.PhotoURL,
		IsActive:      p.IsActive,
		IsVerified:    p.IsVerified,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}

func NewProfileListResponse(profiles []model.Profile, page, pageSize, total int) ProfileListResponse {
	out := ProfileListResponse{
		Items:    make([]ProfileResponse, 0, len(profiles)),
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}
	for _, p := range profiles {
		out.Items = append(out.Items, NewProfileResponse(p))
	}
	return out
}
