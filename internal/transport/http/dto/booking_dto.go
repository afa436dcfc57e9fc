package dto

import (
	"fmt"
	"time"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/model"
	"github.com/aadrika123/Mauryavansham-sub002/internal/services/bookings"
)

const dateLayout = "2006-01-02"

type BookingRequest struct {
	PlacementID int64  `json:"placement_id" validate:"required,gt=0"`
	AdID        int64  `json:"ad_id" validate:"required,gt=0"`
	FromDate    string `json:"from_date" validate:"required"`
	ToDate      string `json:"to_date" validate:"required"`
}

type RescheduleRequest struct {
	FromDate string `json:"from_date" validate:"required"`
	ToDate   string `json:"to_date" validate:"required"`
}

// ParseDates turns the YYYY-MM-DD strings into times; format errors are
// caught here so services only ever see real dates.
func ParseDates(fromDate, toDate string) (time.Time, time.Time, error) {
	from, err := time.Parse(dateLayout, fromDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("from_date must be YYYY-MM-DD")
	}
	to, err := time.Parse(dateLayout, toDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("to_date must be YYYY-MM-DD")
	}
	return from, to, nil
}

type BookingResponse struct {
	ID          int64  `json:"id"`
	PlacementID int64  `json:"placement_id"`
	AdID        int64  `json:"ad_id"`
	OwnerID     int64  `json:"owner_id"`
	FromDate    string `json:"from_date"`
	ToDate      string `json:"to_date"`
	Status      string `json:"status"`
	Display     string `json:"display"`
	DaysLeft    int    `json:"days_left"`
}

type BookingListResponse struct {
	Items []BookingResponse `json:"items"`
}

type PlacementResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Page     string `json:"page"`
	Section  string `json:"section"`
	IsActive bool   `json:"is_active"`
}

type PlacementListResponse struct {
	Items []PlacementResponse `json:"items"`
}

func NewBookingResponse(view bookings.BookingView) BookingResponse {
	return BookingResponse{
		ID:          view.ID,
		PlacementID: view.PlacementID,
		AdID:        view.AdID,
		OwnerID:     view.OwnerID,
		FromDate:    view.FromDate.Format(dateLayout),
		ToDate:      view.ToDate.Format(dateLayout),
		Status:      string(view.Status),
		Display:     string(view.Display),
		DaysLeft:    view.DaysLeft,
	}
}

func NewBookingListResponse(views []bookings.BookingView) BookingListResponse {
	out := BookingListResponse{Items: make([]BookingResponse, 0, len(views))}
	for _, view := range views {
		out.Items = append(out.Items, NewBookingResponse(view))
	}
	return out
}

func NewPlacementListResponse(placements []model.Placement) PlacementListResponse {
	out := PlacementListResponse{Items: make([]PlacementResponse, 0, len(placements))}
	for _, p := range placements {
		out.Items = append(out.Items, PlacementResponse{
			ID:       p.ID,
			Name:     p.Name,
			Page:     p.Page,
			Section:  p.Section,
			IsActive: p.IsActive,
		})
	}
	return out
}
