package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/model"
)

var (
	ErrPlacementNotFound = errors.New("placement not found")
	ErrBookingNotFound   = errors.New("booking not found")
)

// OverlapError reports the first approved booking whose inclusive range
// collides with the requested one.
type OverlapError struct {
	BookingID int64
	FromDate  time.Time
	ToDate    time.Time
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("placement already booked for [%s, %s]",
		e.FromDate.Format("2006-01-02"), e.ToDate.Format("2006-01-02"))
}

const bookingColumns = `
id, placement_id, ad_id, owner_id, from_date, to_date, status, created_at, updated_at`

type BookingRepo struct {
	pool *pgxpool.Pool
}

func NewBookingRepo(pool *pgxpool.Pool) *BookingRepo {
	return &BookingRepo{pool: pool}
}

func (r *BookingRepo) ListPlacements(ctx context.Context) ([]model.Placement, error) {
	if r.pool == nil {
		return []model.Placement{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, name, page, section, is_active
FROM placements
ORDER BY id ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list placements: %w", err)
	}
	defer rows.Close()

	items := make([]model.Placement, 0, 8)
	for rows.Next() {
		var p model.Placement
		if err := rows.Scan(&p.ID, &p.Name, &p.Page, &p.Section, &p.IsActive); err != nil {
			return nil, fmt.Errorf("scan placement: %w", err)
		}
		items = append(items, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate placements: %w", rows.Err())
	}

	return items, nil
}

func (r *BookingRepo) GetPlacement(ctx context.Context, placementID int64) (model.Placement, error) {
	if r.pool == nil {
		return model.Placement{}, fmt.Errorf("postgres pool is nil")
	}
	if placementID <= 0 {
		return model.Placement{}, fmt.Errorf("invalid placement id")
	}

	var p model.Placement
	err := r.pool.QueryRow(ctx, `
SELECT id, name, page, section, is_active
FROM placements
WHERE id = $1
LIMIT 1
`, placementID).Scan(&p.ID, &p.Name, &p.Page, &p.Section, &p.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Placement{}, ErrPlacementNotFound
		}
		return model.Placement{}, fmt.Errorf("query placement: %w", err)
	}

	return p, nil
}

// CreateExclusive runs the admissibility check and the insert in one
// transaction. The placement row is locked first so two concurrent
// requests for the same placement serialize instead of both passing the
// overlap scan.
func (r *BookingRepo) CreateExclusive(ctx context.Context, booking model.Booking) (model.Booking, error) {
	if r.pool == nil {
		return model.Booking{}, fmt.Errorf("postgres pool is nil")
	}

	var created model.Booking
	err := WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := lockPlacement(ctx, tx, booking.PlacementID); err != nil {
			return err
		}
		if err := scanOverlap(ctx, tx, booking.PlacementID, 0, booking.FromDate, booking.ToDate); err != nil {
			return err
		}

		row := tx.QueryRow(ctx, `
INSERT INTO bookings (placement_id, ad_id, owner_id, from_date, to_date, status, created_at, updated_at)
VALUES ($1, $2, $3, $4::date, $5::date, $6, NOW(), NOW())
RETURNING `+bookingColumns+`
`, booking.PlacementID, booking.AdID, booking.OwnerID,
			booking.FromDate.UTC(), booking.ToDate.UTC(), string(booking.Status))

		var err error
		created, err = scanBooking(row)
		if err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.Booking{}, err
	}

	return created, nil
}

// UpdateRangeExclusive moves an existing booking to a new range under the
// same placement lock, ignoring the booking's own row in the overlap scan.
func (r *BookingRepo) UpdateRangeExclusive(ctx context.Context, bookingID int64, fromDate, toDate time.Time) (model.Booking, error) {
	if r.pool == nil {
		return model.Booking{}, fmt.Errorf("postgres pool is nil")
	}
	if bookingID <= 0 {
		return model.Booking{}, fmt.Errorf("invalid booking id")
	}

	var updated model.Booking
	err := WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		current, err := getBookingTx(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if err := lockPlacement(ctx, tx, current.PlacementID); err != nil {
			return err
		}
		if err := scanOverlap(ctx, tx, current.PlacementID, bookingID, fromDate, toDate); err != nil {
			return err
		}

		row := tx.QueryRow(ctx, `
UPDATE bookings
SET from_date = $2::date, to_date = $3::date, status = 'pending', updated_at = NOW()
WHERE id = $1
RETURNING `+bookingColumns+`
`, bookingID, fromDate.UTC(), toDate.UTC())

		updated, err = scanBooking(row)
		if err != nil {
			return fmt.Errorf("update booking range: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.Booking{}, err
	}

	return updated, nil
}

// ApproveExclusive re-runs the overlap scan before persisting approval:
// two overlapping pending bookings may coexist, approved ones may not.
func (r *BookingRepo) ApproveExclusive(ctx context.Context, bookingID int64) (model.Booking, error) {
	if r.pool == nil {
		return model.Booking{}, fmt.Errorf("postgres pool is nil")
	}
	if bookingID <= 0 {
		return model.Booking{}, fmt.Errorf("invalid booking id")
	}

	var approved model.Booking
	err := WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		current, err := getBookingTx(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if err := lockPlacement(ctx, tx, current.PlacementID); err != nil {
			return err
		}
		if err := scanOverlap(ctx, tx, current.PlacementID, bookingID, current.FromDate, current.ToDate); err != nil {
			return err
		}

		row := tx.QueryRow(ctx, `
UPDATE bookings
SET status = 'approved', updated_at = NOW()
WHERE id = $1
RETURNING `+bookingColumns+`
`, bookingID)

		approved, err = scanBooking(row)
		if err != nil {
			return fmt.Errorf("approve booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.Booking{}, err
	}

	return approved, nil
}

func (r *BookingRepo) MarkStatus(ctx context.Context, bookingID int64, status string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if bookingID <= 0 {
		return fmt.Errorf("invalid booking id")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE bookings
SET status = $2, updated_at = NOW()
WHERE id = $1
`, bookingID, status)
	if err != nil {
		return fmt.Errorf("mark booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *BookingRepo) GetByID(ctx context.Context, bookingID int64) (model.Booking, error) {
	if r.pool == nil {
		return model.Booking{}, fmt.Errorf("postgres pool is nil")
	}
	if bookingID <= 0 {
		return model.Booking{}, fmt.Errorf("invalid booking id")
	}

	row := r.pool.QueryRow(ctx, `
SELECT `+bookingColumns+`
FROM bookings
WHERE id = $1
LIMIT 1
`, bookingID)

	booking, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Booking{}, ErrBookingNotFound
		}
		return model.Booking{}, fmt.Errorf("query booking: %w", err)
	}

	return booking, nil
}

func (r *BookingRepo) ListByPlacement(ctx context.Context, placementID int64) ([]model.Booking, error) {
	return r.list(ctx, `
SELECT `+bookingColumns+`
FROM bookings
WHERE placement_id = $1
ORDER BY from_date ASC, id ASC
`, placementID)
}

func (r *BookingRepo) ListByOwner(ctx context.Context, ownerID int64) ([]model.Booking, error) {
	return r.list(ctx, `
SELECT `+bookingColumns+`
FROM bookings
WHERE owner_id = $1
ORDER BY from_date DESC, id DESC
`, ownerID)
}

func (r *BookingRepo) list(ctx context.Context, query string, args ...interface{}) ([]model.Booking, error) {
	if r.pool == nil {
		return []model.Booking{}, nil
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	items := make([]model.Booking, 0, 8)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		items = append(items, booking)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate bookings: %w", rows.Err())
	}

	return items, nil
}

func lockPlacement(ctx context.Context, tx pgx.Tx, placementID int64) error {
	var id int64
	err := tx.QueryRow(ctx, `
SELECT id
FROM placements
WHERE id = $1 AND is_active = TRUE
FOR UPDATE
`, placementID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPlacementNotFound
		}
		return fmt.Errorf("lock placement: %w", err)
	}
	return nil
}

func scanOverlap(ctx context.Context, tx pgx.Tx, placementID, excludeBookingID int64, fromDate, toDate time.Time) error {
	var conflict OverlapError
	err := tx.QueryRow(ctx, `
SELECT id, from_date, to_date
FROM bookings
WHERE
	placement_id = $1
	AND id <> $2
	AND status = 'approved'
	AND from_date <= $4::date
	AND to_date >= $3::date
ORDER BY from_date ASC
LIMIT 1
`, placementID, excludeBookingID, fromDate.UTC(), toDate.UTC()).Scan(
		&conflict.BookingID,
		&conflict.FromDate,
		&conflict.ToDate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("scan booking overlap: %w", err)
	}
	return &conflict
}

func getBookingTx(ctx context.Context, tx pgx.Tx, bookingID int64) (model.Booking, error) {
	row := tx.QueryRow(ctx, `
SELECT `+bookingColumns+`
FROM bookings
WHERE id = $1
LIMIT 1
`, bookingID)

	booking, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Booking{}, ErrBookingNotFound
		}
		return model.Booking{}, fmt.Errorf("query booking: %w", err)
	}
	return booking, nil
}

func scanBooking(row pgx.Row) (model.Booking, error) {
	var b model.Booking
	err := row.Scan(
		&b.ID,
		&b.PlacementID,
		&b.AdID,
		&b.OwnerID,
		&b.FromDate,
		&b.ToDate,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}
