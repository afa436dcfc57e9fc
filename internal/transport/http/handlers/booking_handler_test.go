package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/enums"
	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/model"
	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/rules"
	pgrepo "github.com/aadrika123/Mauryavansham-sub002/internal/repo/postgres"
	booksvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/bookings"
	"github.com/aadrika123/Mauryavansham-sub002/internal/transport/http/dto"
	httperrors "github.com/aadrika123/Mauryavansham-sub002/internal/transport/http/errors"
)

type memBookingStore struct {
	placements map[int64]model.Placement
	bookings   map[int64]*model.Booking
	nextID     int64
}

func newMemBookingStore() *memBookingStore {
	return &memBookingStore{
		placements: map[int64]model.Placement{
			6: {ID: 6, Name: "home top", Page: "home", Section: "top", IsActive: true},
		},
		bookings: make(map[int64]*model.Booking),
		nextID:   1,
	}
}

func (s *memBookingStore) ListPlacements(_ context.Context) ([]model.Placement, error) {
	out := make([]model.Placement, 0, len(s.placements))
	for _, p := range s.placements {
		out = append(out, p)
	}
	return out, nil
}

func (s *memBookingStore) GetPlacement(_ context.Context, placementID int64) (model.Placement, error) {
	p, ok := s.placements[placementID]
	if !ok {
		return model.Placement{}, pgrepo.ErrPlacementNotFound
	}
	return p, nil
}

func (s *memBookingStore) overlap(placementID, excludeID int64, from, to time.Time) *model.Booking {
	for _, b := range s.bookings {
		if b.PlacementID != placementID || b.ID == excludeID || b.Status != enums.ModerationStatusApproved {
			continue
		}
		if rules.RangesOverlap(b.FromDate, b.ToDate, from, to) {
			return b
		}
	}
	return nil
}

func (s *memBookingStore) CreateExclusive(_ context.Context, booking model.Booking) (model.Booking, error) {
	if conflict := s.overlap(booking.PlacementID, 0, booking.FromDate, booking.ToDate); conflict != nil {
		return model.Booking{}, &pgrepo.OverlapError{BookingID: conflict.ID, FromDate: conflict.FromDate, ToDate: conflict.ToDate}
	}
	booking.ID = s.nextID
	s.nextID++
	s.bookings[booking.ID] = &booking
	return booking, nil
}

func (s *memBookingStore) UpdateRangeExclusive(_ context.Context, bookingID int64, from, to time.Time) (model.Booking, error) {
	b, ok := s.bookings[bookingID]
	if !ok {
		return model.Booking{}, pgrepo.ErrBookingNotFound
	}
	if conflict := s.overlap(b.PlacementID, bookingID, from, to); conflict != nil {
		return model.Booking{}, &pgrepo.OverlapError{BookingID: conflict.ID, FromDate: conflict.FromDate, ToDate: conflict.ToDate}
	}
	b.FromDate = from
	b.ToDate = to
	b.Status = enums.ModerationStatusPending
	return *b, nil
}

func (s *memBookingStore) ApproveExclusive(_ context.Context, bookingID int64) (model.Booking, error) {
	b, ok := s.bookings[bookingID]
	if !ok {
		return model.Booking{}, pgrepo.ErrBookingNotFound
	}
	if conflict := s.overlap(b.PlacementID, bookingID, b.FromDate, b.ToDate); conflict != nil {
		return model.Booking{}, &pgrepo.OverlapError{BookingID: conflict.ID, FromDate: conflict.FromDate, ToDate: conflict.ToDate}
	}
	b.Status = enums.ModerationStatusApproved
	return *b, nil
}

func (s *memBookingStore) MarkStatus(_ context.Context, bookingID int64, status string) error {
	b, ok := s.bookings[bookingID]
	if !ok {
		return pgrepo.ErrBookingNotFound
	}
	b.Status = enums.ModerationStatus(status)
	return nil
}

func (s *memBookingStore) GetByID(_ context.Context, bookingID int64) (model.Booking, error) {
	b, ok := s.bookings[bookingID]
	if !ok {
		return model.Booking{}, pgrepo.ErrBookingNotFound
	}
	return *b, nil
}

func (s *memBookingStore) ListByPlacement(_ context.Context, placementID int64) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range s.bookings {
		if b.PlacementID == placementID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *memBookingStore) ListByOwner(_ context.Context, ownerID int64) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range s.bookings {
		if b.OwnerID == ownerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func newBookingRouter(store *memBookingStore) (chi.Router, *booksvc.Service) {
	service := booksvc.NewService(store, nil, 90)
	booking := NewBookingHandler(service)
	admin := NewAdminHandler(nil, service, nil, nil, nil)

	r := chi.NewRouter()
	r.Get("/placements", booking.Placements)
	r.Post("/bookings", booking.Create)
	r.Get("/bookings/mine", booking.Mine)
	r.Post("/admin/bookings/{id}/approve", admin.ApproveBooking)
	return r, service
}

func bookingBody(placementID int64, from, to string) string {
	return fmt.Sprintf(`{"placement_id":%d,"ad_id":100,"from_date":%q,"to_date":%q}`, placementID, from, to)
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func TestBookingConflictOverHTTP(t *testing.T) {
	store := newMemBookingStore()
	router, _ := newBookingRouter(store)

	from, to := futureDate(10), futureDate(19)

	var created dto.BookingResponse
	doJSON(t, router,
		authedRequest(http.MethodPost, "/bookings", bookingBody(6, from, to), 10, enums.RoleUser),
		http.StatusCreated, &created)
	if created.Status != "pending" || created.Display != "upcoming" {
		t.Fatalf("created = %+v", created)
	}

	doJSON(t, router,
		authedRequest(http.MethodPost, fmt.Sprintf("/admin/bookings/%d/approve", created.ID), "", 42, enums.RoleAdmin),
		http.StatusOK, nil)

	// Overlapping request now returns 409 carrying the taken interval.
	var conflict httperrors.ConflictError
	doJSON(t, router,
		authedRequest(http.MethodPost, "/bookings", bookingBody(6, futureDate(14), futureDate(24)), 11, enums.RoleUser),
		http.StatusConflict, &conflict)
	if conflict.Code != "BOOKING_CONFLICT" {
		t.Fatalf("code = %q", conflict.Code)
	}
	if conflict.BookingID != created.ID || conflict.FromDate != from || conflict.ToDate != to {
		t.Fatalf("conflict = %+v", conflict)
	}

	// The day after the booked range is free.
	doJSON(t, router,
		authedRequest(http.MethodPost, "/bookings", bookingBody(6, futureDate(20), futureDate(29)), 11, enums.RoleUser),
		http.StatusCreated, nil)
}

func TestBookingValidationOverHTTP(t *testing.T) {
	store := newMemBookingStore()
	router, _ := newBookingRouter(store)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"bad date format", bookingBody(6, "03/01/2026", futureDate(10)), http.StatusBadRequest},
		{"to before from", bookingBody(6, futureDate(10), futureDate(5)), http.StatusBadRequest},
		{"single day range", bookingBody(6, futureDate(10), futureDate(10)), http.StatusBadRequest},
		{"past from", bookingBody(6, "2020-01-01", futureDate(10)), http.StatusBadRequest},
		{"unknown placement", bookingBody(99, futureDate(10), futureDate(12)), http.StatusNotFound},
		{"missing fields", `{"placement_id":6}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doJSON(t, router,
				authedRequest(http.MethodPost, "/bookings", tt.body, 10, enums.RoleUser),
				tt.want, nil)
		})
	}
}

func TestBookingMineListsOwnOnly(t *testing.T) {
	store := newMemBookingStore()
	router, _ := newBookingRouter(store)

	doJSON(t, router,
		authedRequest(http.MethodPost, "/bookings", bookingBody(6, futureDate(10), futureDate(12)), 10, enums.RoleUser),
		http.StatusCreated, nil)
	doJSON(t, router,
		authedRequest(http.MethodPost, "/bookings", bookingBody(6, futureDate(20), futureDate(22)), 11, enums.RoleUser),
		http.StatusCreated, nil)

	var list dto.BookingListResponse
	doJSON(t, router,
		authedRequest(http.MethodGet, "/bookings/mine", "", 10, enums.RoleUser),
		http.StatusOK, &list)
	if len(list.Items) != 1 || list.Items[0].OwnerID != 10 {
		t.Fatalf("items = %+v", list.Items)
	}
}

func TestPlacementsListing(t *testing.T) {
	store := newMemBookingStore()
	router, _ := newBookingRouter(store)

	var list dto.PlacementListResponse
	req := authedRequest(http.MethodGet, "/placements", "", 10, enums.RoleUser)
	doJSON(t, router, req, http.StatusOK, &list)
	if len(list.Items) != 1 || list.Items[0].Name != "home top" {
		t.Fatalf("items = %+v", list.Items)
	}
}
