package model

import (
	"time"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/enums"
)

// Placement is a named advertising slot that holds at most one approved
// banner per date range.
type Placement struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Page     string `json:"page"`
	Section  string `json:"section"`
	IsActive bool   `json:"is_active"`
}

// Booking reserves a placement for an inclusive [FromDate, ToDate]
// calendar range. Its Status is moderation state; the display state
// (upcoming/active/expired) is derived from the dates at read time.
type Booking struct {
	ID          int64                  `json:"id"`
	PlacementID int64                  `json:"placement_id"`
	AdID        int64                  `json:"ad_id"`
	OwnerID     int64                  `json:"owner_id"`
	FromDate    time.Time              `json:"from_date"`
	ToDate      time.Time              `json:"to_date"`
	Status      enums.ModerationStatus `json:"status"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}
