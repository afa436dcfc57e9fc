package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/enums"
	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/model"
	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/rules"
	pgrepo "github.com/aadrika123/Mauryavansham-sub002/internal/repo/postgres"
)

type fakeBookingStore struct {
	placements map[int64]model.Placement
	bookings   map[int64]*model.Booking
	nextID     int64
}

func newFakeBookingStore(placements ...model.Placement) *fakeBookingStore {
	s := &fakeBookingStore{
		placements: make(map[int64]model.Placement),
		bookings:   make(map[int64]*model.Booking),
		nextID:     1,
	}
	for _, p := range placements {
		s.placements[p.ID] = p
	}
	return s
}

func (s *fakeBookingStore) ListPlacements(_ context.Context) ([]model.Placement, error) {
	out := make([]model.Placement, 0, len(s.placements))
	for _, p := range s.placements {
		out = append(out, p)
	}
	return out, nil
}

func (s *fakeBookingStore) GetPlacement(_ context.Context, placementID int64) (model.Placement, error) {
	p, ok := s.placements[placementID]
	if !ok {
		return model.Placement{}, pgrepo.ErrPlacementNotFound
	}
	return p, nil
}

func (s *fakeBookingStore) findOverlap(placementID, excludeID int64, fromDate, toDate time.Time) *model.Booking {
	for _, b := range s.bookings {
		if b.PlacementID != placementID || b.ID == excludeID {
			continue
		}
		if b.Status != enums.ModerationStatusApproved {
			continue
		}
		if rules.RangesOverlap(b.FromDate, b.ToDate, fromDate, toDate) {
			return b
		}
	}
	return nil
}

func (s *fakeBookingStore) CreateExclusive(_ context.Context, booking model.Booking) (model.Booking, error) {
	if conflict := s.findOverlap(booking.PlacementID, 0, booking.FromDate, booking.ToDate); conflict != nil {
		return model.Booking{}, &pgrepo.OverlapError{BookingID: conflict.ID, FromDate: conflict.FromDate, ToDate: conflict.ToDate}
	}
	booking.ID = s.nextID
	s.nextID++
	s.bookings[booking.ID] = &booking
	return booking, nil
}

func (s *fakeBookingStore) UpdateRangeExclusive(_ context.Context, bookingID int64, fromDate, toDate time.Time) (model.Booking, error) {
	b, ok := s.bookings[bookingID]
	if !ok {
		return model.Booking{}, pgrepo.ErrBookingNotFound
	}
	if conflict := s.findOverlap(b.PlacementID, bookingID, fromDate, toDate); conflict != nil {
		return model.Booking{}, &pgrepo.OverlapError{BookingID: conflict.ID, FromDate: conflict.FromDate, ToDate: conflict.ToDate}
	}
	b.FromDate = fromDate
	b.ToDate = toDate
	b.Status = enums.ModerationStatusPending
	return *b, nil
}

func (s *fakeBookingStore) ApproveExclusive(_ context.Context, bookingID int64) (model.Booking, error) {
	b, ok := s.bookings[bookingID]
	if !ok {
		return model.Booking{}, pgrepo.ErrBookingNotFound
	}
	if conflict := s.findOverlap(b.PlacementID, bookingID, b.FromDate, b.ToDate); conflict != nil {
		return model.Booking{}, &pgrepo.OverlapError{BookingID: conflict.ID, FromDate: conflict.FromDate, ToDate: conflict.ToDate}
	}
	b.Status = enums.ModerationStatusApproved
	return *b, nil
}

func (s *fakeBookingStore) MarkStatus(_ context.Context, bookingID int64, status string) error {
	b, ok := s.bookings[bookingID]
	if !ok {
		return pgrepo.ErrBookingNotFound
	}
	b.Status = enums.ModerationStatus(status)
	return nil
}

func (s *fakeBookingStore) GetByID(_ context.Context, bookingID int64) (model.Booking, error) {
	b, ok := s.bookings[bookingID]
	if !ok {
		return model.Booking{}, pgrepo.ErrBookingNotFound
	}
	return *b, nil
}

func (s *fakeBookingStore) ListByPlacement(_ context.Context, placementID int64) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range s.bookings {
		if b.PlacementID == placementID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *fakeBookingStore) ListByOwner(_ context.Context, ownerID int64) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range s.bookings {
		if b.OwnerID == ownerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestService(store BookingStore) *Service {
	svc := NewService(store, nil, 90)
	svc.now = func() time.Time { return date("2024-02-01") }
	return svc
}

func mustCreateApproved(t *testing.T, svc *Service, store *fakeBookingStore, placementID int64, from, to string) BookingView {
	t.Helper()
	view, err := svc.Create(context.Background(), 10, placementID, 100, date(from), date(to))
	if err != nil {
		t.Fatalf("Create %s..%s: %v", from, to, err)
	}
	if err := store.MarkStatus(context.Background(), view.ID, string(enums.ModerationStatusApproved)); err != nil {
		t.Fatalf("mark approved: %v", err)
	}
	return view
}

func TestCreateRejectsOverlapWithApproved(t *testing.T) {
	store := newFakeBookingStore(model.Placement{ID: 6, Name: "home top", IsActive: true})
	svc := newTestService(store)

	first := mustCreateApproved(t, svc, store, 6, "2024-03-01", "2024-03-10")

	_, err := svc.Create(context.Background(), 11, 6, 101, date("2024-03-05"), date("2024-03-15"))
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
	if conflict.BookingID != first.ID {
		t.Fatalf("conflict booking = %d, want %d", conflict.BookingID, first.ID)
	}
	if !conflict.FromDate.Equal(date("2024-03-01")) || !conflict.ToDate.Equal(date("2024-03-10")) {
		t.Fatalf("conflict range = %s..%s", conflict.FromDate, conflict.ToDate)
	}
}

func TestCreateAcceptsAdjacentRange(t *testing.T) {
	store := newFakeBookingStore(model.Placement{ID: 6, IsActive: true})
	svc := newTestService(store)

	mustCreateApproved(t, svc, store, 6, "2024-03-01", "2024-03-10")

	view, err := svc.Create(context.Background(), 11, 6, 101, date("2024-03-11"), date("2024-03-20"))
	if err != nil {
		t.Fatalf("Create adjacent: %v", err)
	}
	if view.Status != enums.ModerationStatusPending {
		t.Fatalf("status = %s, want pending", view.Status)
	}
}

func TestCreateRejectsSharedBoundaryDay(t *testing.T) {
	store := newFakeBookingStore(model.Placement{ID: 6, IsActive: true})
	svc := newTestService(store)

	mustCreateApproved(t, svc, store, 6, "2024-03-01", "2024-03-10")

	// An inclusive range means 2024-03-10 is still taken.
	_, err := svc.Create(context.Background(), 11, 6, 101, date("2024-03-10"), date("2024-03-12"))
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
}

func TestCreateIgnoresPendingAndRemovedBookings(t *testing.T) {
	store := newFakeBookingStore(model.Placement{ID: 6, IsActive: true})
	svc := newTestService(store)

	// Pending booking over the same range does not block a new request.
	if _, err := svc.Create(context.Background(), 10, 6, 100, date("2024-03-01"), date("2024-03-10")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(context.Background(), 11, 6, 101, date("2024-03-01"), date("2024-03-10")); err != nil {
		t.Fatalf("second pending create: %v", err)
	}
}

func TestCreateOnOtherPlacementDoesNotConflict(t *testing.T) {
	store := newFakeBookingStore(
		model.Placement{ID: 6, IsActive: true},
		model.Placement{ID: 7, IsActive: true},
	)
	svc := newTestService(store)

	mustCreateApproved(t, svc, store, 6, "2024-03-01", "2024-03-10")

	if _, err := svc.Create(context.Background(), 11, 7, 101, date("2024-03-05"), date("2024-03-15")); err != nil {
		t.Fatalf("Create on other placement: %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	store := newFakeBookingStore(
		model.Placement{ID: 6, IsActive: true},
		model.Placement{ID: 8, IsActive: false},
	)
	svc := newTestService(store)

	tests := []struct {
		name        string
		placementID int64
		from, to    string
		wantErr     error
	}{
		{"unknown placement", 99, "2024-03-01", "2024-03-10", ErrPlacementNotFound},
		{"inactive placement", 8, "2024-03-01", "2024-03-10", ErrValidation},
		{"from in the past", 6, "2024-01-15", "2024-03-10", ErrValidation},
		{"to precedes from", 6, "2024-03-10", "2024-03-01", ErrValidation},
		{"to equals from", 6, "2024-03-05", "2024-03-05", ErrValidation},
		{"range too long", 6, "2024-03-01", "2024-08-01", ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), 10, tt.placementID, 100, date(tt.from), date(tt.to))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestApproveDetectsLateConflict(t *testing.T) {
	store := newFakeBookingStore(model.Placement{ID: 6, IsActive: true})
	svc := newTestService(store)

	// Two pending bookings over the same range; the first wins.
	a, err := svc.Create(context.Background(), 10, 6, 100, date("2024-03-01"), date("2024-03-10"))
	if err != nil {
		t.Fatalf("create a: %v", err)
	}
	b, err := svc.Create(context.Background(), 11, 6, 101, date("2024-03-05"), date("2024-03-12"))
	if err != nil {
		t.Fatalf("create b: %v", err)
	}

	if _, err := svc.Approve(context.Background(), a.ID, enums.RoleAdmin); err != nil {
		t.Fatalf("approve a: %v", err)
	}

	_, err = svc.Approve(context.Background(), b.ID, enums.RoleAdmin)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
	if conflict.BookingID != a.ID {
		t.Fatalf("conflict booking = %d, want %d", conflict.BookingID, a.ID)
	}
}

func TestApproveRequiresModerator(t *testing.T) {
	store := newFakeBookingStore(model.Placement{ID: 6, IsActive: true})
	svc := newTestService(store)

	view, err := svc.Create(context.Background(), 10, 6, 100, date("2024-03-01"), date("2024-03-10"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Approve(context.Background(), view.ID, enums.RoleUser); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestCancelFreesRange(t *testing.T) {
	store := newFakeBookingStore(model.Placement{ID: 6, IsActive: true})
	svc := newTestService(store)

	first := mustCreateApproved(t, svc, store, 6, "2024-03-01", "2024-03-10")

	if _, err := svc.Cancel(context.Background(), first.ID, 10, enums.RoleUser); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if _, err := svc.Create(context.Background(), 11, 6, 101, date("2024-03-05"), date("2024-03-15")); err != nil {
		t.Fatalf("create after cancel: %v", err)
	}
}

func TestCancelByStrangerForbidden(t *testing.T) {
	store := newFakeBookingStore(model.Placement{ID: 6, IsActive: true})
	svc := newTestService(store)

	view, err := svc.Create(context.Background(), 10, 6, 100, date("2024-03-01"), date("2024-03-10"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Cancel(context.Background(), view.ID, 99, enums.RoleUser); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestRescheduleResetsToPending(t *testing.T) {
	store := newFakeBookingStore(model.Placement{ID: 6, IsActive: true})
	svc := newTestService(store)

	first := mustCreateApproved(t, svc, store, 6, "2024-03-01", "2024-03-10")

	view, err := svc.Reschedule(context.Background(), first.ID, 10, enums.RoleUser, date("2024-04-01"), date("2024-04-10"))
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if view.Status != enums.ModerationStatusPending {
		t.Fatalf("status = %s, want pending", view.Status)
	}
}

func TestDisplayState(t *testing.T) {
	store := newFakeBookingStore(model.Placement{ID: 6, IsActive: true})
	svc := newTestService(store)

	tests := []struct {
		from, to string
		want     enums.BookingDisplay
	}{
		{"2024-03-01", "2024-03-10", enums.BookingDisplayUpcoming},
		{"2024-02-01", "2024-02-05", enums.BookingDisplayActive},
	}

	for _, tt := range tests {
		view, err := svc.Create(context.Background(), 10, 6, 100, date(tt.from), date(tt.to))
		if err != nil {
			t.Fatalf("create %s..%s: %v", tt.from, tt.to, err)
		}
		if view.Display != tt.want {
			t.Fatalf("display for %s..%s = %s, want %s", tt.from, tt.to, view.Display, tt.want)
		}
	}
}
