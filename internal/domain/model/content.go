package model

import (
	"time"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/enums"
)

// ContentItem is any moderatable piece of portal content: an ad, a blog
// post, an event, a discussion thread or a business listing. All kinds
// share the same moderation lifecycle and audit fields.
type ContentItem struct {
	ID              int64                  `json:"id"`
	Kind            enums.ContentKind      `json:"kind"`
	OwnerID         int64                  `json:"owner_id"`
	Title           string                 `json:"title"`
	Body            string                 `json:"body"`
	Category        string                 `json:"category"`
	City            string                 `json:"city"`
	ImageURL        string                 `json:"image_url,omitempty"`
	ContactPhone    string                 `json:"contact_phone,omitempty"`
	Status          enums.ModerationStatus `json:"status"`
	ApprovedAt      *time.Time             `json:"approved_at,omitempty"`
	ApprovedBy      *int64                 `json:"approved_by,omitempty"`
	RejectedBy      *int64                 `json:"rejected_by,omitempty"`
	RejectionReason *string                `json:"rejection_reason,omitempty"`
	RemovedBy       *int64                 `json:"removed_by,omitempty"`
	RemoveReason    *string                `json:"remove_reason,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}
