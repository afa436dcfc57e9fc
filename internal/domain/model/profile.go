package model

import "time"

// Profile is a community member card. Profiles are never hard-deleted,
// deactivation flips IsActive and records the owner's reason and review.
type Profile struct {
	UserID           int64      `json:"user_id"`
	Name             string     `json:"name"`
	Gender           string     `json:"gender"`
	Birthdate        *time.Time `json:"birthdate,omitempty"`
	City             string     `json:"city"`
	Occupation       string     `json:"occupation"`
	Education        string     `json:"education"`
	MaritalStatus    string     `json:"marital_status"`
	About            string     `json:"about"`
	PhotoURL         string     `json:"photo_url,omitempty"`
	IsActive         bool       `json:"is_active"`
	IsVerified       bool       `json:"is_verified"`
	DeactivateReason *string    `json:"deactivate_reason,omitempty"`
	DeactivateReview *string    `json:"deactivate_review,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
