package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/enums"
	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/model"
	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/rules"
	pgrepo "github.com/aadrika123/Mauryavansham-sub002/internal/repo/postgres"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrForbidden         = errors.New("actor is not allowed to modify this booking")
	ErrNotFound          = errors.New("booking not found")
	ErrPlacementNotFound = errors.New("placement not found")
)

// ConflictError reports the approved booking that already covers part of
// the requested range.
type ConflictError struct {
	PlacementID int64
	BookingID   int64
	FromDate    time.Time
	ToDate      time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("placement %d is already booked from %s to %s (booking %d)",
		e.PlacementID, e.FromDate.Format("2006-01-02"), e.ToDate.Format("2006-01-02"), e.BookingID)
}

type BookingStore interface {
	ListPlacements(ctx context.Context) ([]model.Placement, error)
	GetPlacement(ctx context.Context, placementID int64) (model.Placement, error)
	CreateExclusive(ctx context.Context, booking model.Booking) (model.Booking, error)
	UpdateRangeExclusive(ctx context.Context, bookingID int64, fromDate, toDate time.Time) (model.Booking, error)
	ApproveExclusive(ctx context.Context, bookingID int64) (model.Booking, error)
	MarkStatus(ctx context.Context, bookingID int64, status string) error
	GetByID(ctx context.Context, bookingID int64) (model.Booking, error)
	ListByPlacement(ctx context.Context, placementID int64) ([]model.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Booking, error)
}

type Notifier interface {
	Notify(ctx context.Context, recipientID int64, kind, message string)
}

// BookingView is a booking plus its display state derived from today's
// date. The display state is never persisted.
type BookingView struct {
	model.Booking
	Display  enums.BookingDisplay `json:"display"`
	DaysLeft int                  `json:"days_left"`
}

type Service struct {
	store        BookingStore
	notifier     Notifier
	maxRangeDays int
	now          func() time.Time
}

func NewService(store BookingStore, notifier Notifier, maxRangeDays int) *Service {
	if maxRangeDays <= 0 {
		maxRangeDays = 90
	}

	return &Service{
		store:        store,
		notifier:     notifier,
		maxRangeDays: maxRangeDays,
		now:          time.Now,
	}
}

func (s *Service) ListPlacements(ctx context.Context) ([]model.Placement, error) {
	if s.store == nil {
		return nil, fmt.Errorf("booking store is nil")
	}
	return s.store.ListPlacements(ctx)
}

// Create validates the request and reserves the range under the placement
// lock. The new booking always starts out pending moderation.
func (s *Service) Create(ctx context.Context, ownerID, placementID, adID int64, fromDate, toDate time.Time) (BookingView, error) {
	if ownerID <= 0 || adID <= 0 {
		return BookingView{}, fmt.Errorf("invalid owner or ad id: %w", ErrValidation)
	}

	fromDate, toDate, err := s.validateRange(ctx, placementID, fromDate, toDate)
	if err != nil {
		return BookingView{}, err
	}

	booking, err := s.store.CreateExclusive(ctx, model.Booking{
		PlacementID: placementID,
		AdID:        adID,
		OwnerID:     ownerID,
		FromDate:    fromDate,
		ToDate:      toDate,
		Status:      enums.ModerationStatusPending,
	})
	if err != nil {
		return BookingView{}, s.mapStoreError(err, placementID)
	}

	return s.view(booking), nil
}

// Reschedule moves an existing booking to a new range. Only the owner or
// a moderator may do it, and the booking drops back to pending because
// the new range has not been reviewed.
func (s *Service) Reschedule(ctx context.Context, bookingID int64, actorID int64, role enums.Role, fromDate, toDate time.Time) (BookingView, error) {
	booking, err := s.authorize(ctx, bookingID, actorID, role)
	if err != nil {
		return BookingView{}, err
	}
	if booking.Status == enums.ModerationStatusRemoved {
		return BookingView{}, fmt.Errorf("booking is removed: %w", ErrValidation)
	}

	fromDate, toDate, err = s.validateRange(ctx, booking.PlacementID, fromDate, toDate)
	if err != nil {
		return BookingView{}, err
	}

	updated, err := s.store.UpdateRangeExclusive(ctx, bookingID, fromDate, toDate)
	if err != nil {
		return BookingView{}, s.mapStoreError(err, booking.PlacementID)
	}

	return s.view(updated), nil
}

// Approve re-checks the range against approved bookings inside the same
// transaction, since overlapping pending requests may coexist until one
// of them wins.
func (s *Service) Approve(ctx context.Context, bookingID int64, actorRole enums.Role) (BookingView, error) {
	if !actorRole.IsModerator() {
		return BookingView{}, ErrForbidden
	}

	booking, err := s.store.GetByID(ctx, bookingID)
	if err != nil {
		return BookingView{}, s.mapStoreError(err, 0)
	}
	if !rules.CanTransition(booking.Status, enums.ModerationStatusApproved) {
		return BookingView{}, fmt.Errorf("booking is %s: %w", booking.Status, ErrValidation)
	}

	approved, err := s.store.ApproveExclusive(ctx, bookingID)
	if err != nil {
		return BookingView{}, s.mapStoreError(err, booking.PlacementID)
	}

	s.notify(ctx, approved.OwnerID, "booking_approved",
		fmt.Sprintf("Your banner booking %s to %s has been approved.",
			approved.FromDate.Format("2006-01-02"), approved.ToDate.Format("2006-01-02")))

	return s.view(approved), nil
}

func (s *Service) Reject(ctx context.Context, bookingID int64, actorRole enums.Role, reason string) (BookingView, error) {
	if !actorRole.IsModerator() {
		return BookingView{}, ErrForbidden
	}
	if reason == "" {
		return BookingView{}, fmt.Errorf("rejection reason is required: %w", ErrValidation)
	}

	booking, err := s.store.GetByID(ctx, bookingID)
	if err != nil {
		return BookingView{}, s.mapStoreError(err, 0)
	}
	if !rules.CanTransition(booking.Status, enums.ModerationStatusRejected) {
		return BookingView{}, fmt.Errorf("booking is %s: %w", booking.Status, ErrValidation)
	}

	if err := s.store.MarkStatus(ctx, bookingID, string(enums.ModerationStatusRejected)); err != nil {
		return BookingView{}, s.mapStoreError(err, 0)
	}

	s.notify(ctx, booking.OwnerID, "booking_rejected",
		fmt.Sprintf("Your banner booking was rejected: %s", reason))

	booking.Status = enums.ModerationStatusRejected
	return s.view(booking), nil
}

// Cancel frees the range. Owners cancel their own bookings, moderators
// anyone's.
func (s *Service) Cancel(ctx context.Context, bookingID int64, actorID int64, role enums.Role) (BookingView, error) {
	booking, err := s.authorize(ctx, bookingID, actorID, role)
	if err != nil {
		return BookingView{}, err
	}
	if booking.Status == enums.ModerationStatusRemoved {
		return s.view(booking), nil
	}

	if err := s.store.MarkStatus(ctx, bookingID, string(enums.ModerationStatusRemoved)); err != nil {
		return BookingView{}, s.mapStoreError(err, 0)
	}

	booking.Status = enums.ModerationStatusRemoved
	return s.view(booking), nil
}

func (s *Service) Get(ctx context.Context, bookingID int64) (BookingView, error) {
	booking, err := s.store.GetByID(ctx, bookingID)
	if err != nil {
		return BookingView{}, s.mapStoreError(err, 0)
	}
	return s.view(booking), nil
}

func (s *Service) ListByPlacement(ctx context.Context, placementID int64) ([]BookingView, error) {
	if _, err := s.store.GetPlacement(ctx, placementID); err != nil {
		return nil, s.mapStoreError(err, placementID)
	}
	bookings, err := s.store.ListByPlacement(ctx, placementID)
	if err != nil {
		return nil, err
	}
	return s.views(bookings), nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]BookingView, error) {
	if ownerID <= 0 {
		return nil, fmt.Errorf("invalid owner id: %w", ErrValidation)
	}
	bookings, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.views(bookings), nil
}

// validateRange normalizes both dates to midnight UTC and applies the
// request checks in a fixed order so the first failure wins.
func (s *Service) validateRange(ctx context.Context, placementID int64, fromDate, toDate time.Time) (time.Time, time.Time, error) {
	if placementID <= 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid placement id: %w", ErrValidation)
	}
	if s.store == nil {
		return time.Time{}, time.Time{}, fmt.Errorf("booking store is nil")
	}

	placement, err := s.store.GetPlacement(ctx, placementID)
	if err != nil {
		return time.Time{}, time.Time{}, s.mapStoreError(err, placementID)
	}
	if !placement.IsActive {
		return time.Time{}, time.Time{}, fmt.Errorf("placement %d is inactive: %w", placementID, ErrValidation)
	}

	fromDate = rules.DateOnly(fromDate)
	toDate = rules.DateOnly(toDate)
	today := rules.DateOnly(s.now())

	if fromDate.IsZero() || toDate.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("both dates are required: %w", ErrValidation)
	}
	if fromDate.Before(today) {
		return time.Time{}, time.Time{}, fmt.Errorf("from date is in the past: %w", ErrValidation)
	}
	if !toDate.After(fromDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("to date must be after from date: %w", ErrValidation)
	}
	if days := int(toDate.Sub(fromDate).Hours()/24) + 1; days > s.maxRangeDays {
		return time.Time{}, time.Time{}, fmt.Errorf("range of %d days exceeds the %d day limit: %w", days, s.maxRangeDays, ErrValidation)
	}

	return fromDate, toDate, nil
}

func (s *Service) authorize(ctx context.Context, bookingID, actorID int64, role enums.Role) (model.Booking, error) {
	if bookingID <= 0 || actorID <= 0 {
		return model.Booking{}, fmt.Errorf("invalid booking or actor id: %w", ErrValidation)
	}
	if s.store == nil {
		return model.Booking{}, fmt.Errorf("booking store is nil")
	}

	booking, err := s.store.GetByID(ctx, bookingID)
	if err != nil {
		return model.Booking{}, s.mapStoreError(err, 0)
	}
	if booking.OwnerID != actorID && !role.IsModerator() {
		return model.Booking{}, ErrForbidden
	}

	return booking, nil
}

func (s *Service) view(booking model.Booking) BookingView {
	display, daysLeft := rules.BookingDisplay(s.now(), booking.FromDate, booking.ToDate)
	return BookingView{
		Booking:  booking,
		Display:  display,
		DaysLeft: daysLeft,
	}
}

func (s *Service) views(bookings []model.Booking) []BookingView {
	out := make([]BookingView, 0, len(bookings))
	for _, booking := range bookings {
		out = append(out, s.view(booking))
	}
	return out
}

func (s *Service) notify(ctx context.Context, recipientID int64, kind, message string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, recipientID, kind, message)
}

func (s *Service) mapStoreError(err error, placementID int64) error {
	var overlap *pgrepo.OverlapError
	switch {
	case errors.As(err, &overlap):
		return &ConflictError{
			PlacementID: placementID,
			BookingID:   overlap.BookingID,
			FromDate:    overlap.FromDate,
			ToDate:      overlap.ToDate,
		}
	case errors.Is(err, pgrepo.ErrPlacementNotFound):
		return ErrPlacementNotFound
	case errors.Is(err, pgrepo.ErrBookingNotFound):
		return ErrNotFound
	default:
		return err
	}
}
