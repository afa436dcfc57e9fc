package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/enums"
	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/model"
)

var (
	ErrContentNotFound = errors.New("content item not found")
	// ErrStaleStatus means the guarded transition matched the id but not
	// the expected current status, so nothing was written.
	ErrStaleStatus = errors.New("content status changed concurrently")
)

const contentColumns = `
id, kind, owner_id, title, body, category, city,
COALESCE(image_url, ''), COALESCE(contact_phone, ''),
status, approved_at, approved_by, rejected_by, rejection_reason,
removed_by, remove_reason, created_at, updated_at`

// ContentFilter is the shared directory/export filter contract: the free
// text query matches any searchable field, structured filters are ANDed.
type ContentFilter struct {
	Kind        enums.ContentKind
	Status      enums.ModerationStatus
	OwnerID     int64
	Category    string
	City        string
	Query       string
	CreatedFrom time.Time
	CreatedTo   time.Time
}

type ContentRepo struct {
	pool *pgxpool.Pool
}

func NewContentRepo(pool *pgxpool.Pool) *ContentRepo {
	return &ContentRepo{pool: pool}
}

func (r *ContentRepo) Insert(ctx context.Context, item model.ContentItem) (model.ContentItem, error) {
	if r.pool == nil {
		return model.ContentItem{}, fmt.Errorf("postgres pool is nil")
	}
	if !item.Kind.Valid() || item.OwnerID <= 0 {
		return model.ContentItem{}, fmt.Errorf("invalid content payload")
	}

	row := r.pool.QueryRow(ctx, `
INSERT INTO content_items (
	kind, owner_id, title, body, category, city, image_url, contact_phone,
	status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, NOW(), NOW())
RETURNING `+contentColumns+`
`, string(item.Kind), item.OwnerID, item.Title, item.Body, item.Category,
		item.City, item.ImageURL, item.ContactPhone, string(item.Status))

	created, err := scanContentItem(row)
	if err != nil {
		return model.ContentItem{}, fmt.Errorf("insert content item: %w", err)
	}
	return created, nil
}

func (r *ContentRepo) GetByID(ctx context.Context, id int64) (model.ContentItem, error) {
	if r.pool == nil {
		return model.ContentItem{}, fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return model.ContentItem{}, fmt.Errorf("invalid content id")
	}

	row := r.pool.QueryRow(ctx, `
SELECT `+contentColumns+`
FROM content_items
WHERE id = $1
LIMIT 1
`, id)

	item, err := scanContentItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ContentItem{}, ErrContentNotFound
		}
		return model.ContentItem{}, fmt.Errorf("query content item: %w", err)
	}
	return item, nil
}

func (r *ContentRepo) UpdateFields(ctx context.Context, id int64, title, body, category, city, imageURL, contactPhone string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return fmt.Errorf("invalid content id")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE content_items
SET
	title = $2,
	body = $3,
	category = $4,
	city = $5,
	image_url = NULLIF($6, ''),
	contact_phone = NULLIF($7, ''),
	updated_at = NOW()
WHERE id = $1
`, id, title, body, category, city, imageURL, contactPhone)
	if err != nil {
		return fmt.Errorf("update content fields: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrContentNotFound
	}

	return nil
}

// MarkPending moves an item into the moderation queue. Rejection audit
// fields from a previous decision are kept as history until the next
// decision overwrites them.
func (r *ContentRepo) MarkPending(ctx context.Context, id int64, expected enums.ModerationStatus) error {
	return r.guardedExec(ctx, id, expected, `
UPDATE content_items
SET status = 'pending', updated_at = NOW()
WHERE id = $1 AND status = $2
`)
}

func (r *ContentRepo) MarkApproved(ctx context.Context, id int64, expected enums.ModerationStatus, actorID int64) error {
	return r.guardedExec(ctx, id, expected, `
UPDATE content_items
SET
	status = 'approved',
	approved_at = NOW(),
	approved_by = $3,
	rejected_by = NULL,
	rejection_reason = NULL,
	updated_at = NOW()
WHERE id = $1 AND status = $2
`, actorID)
}

func (r *ContentRepo) MarkRejected(ctx context.Context, id int64, expected enums.ModerationStatus, actorID int64, reason string) error {
	return r.guardedExec(ctx, id, expected, `
UPDATE content_items
SET
	status = 'rejected',
	rejected_by = $3,
	rejection_reason = $4,
	updated_at = NOW()
WHERE id = $1 AND status = $2
`, actorID, strings.TrimSpace(reason))
}

func (r *ContentRepo) MarkRemoved(ctx context.Context, id int64, expected enums.ModerationStatus, actorID int64, reason string) error {
	return r.guardedExec(ctx, id, expected, `
UPDATE content_items
SET
	status = 'removed',
	removed_by = $3,
	remove_reason = $4,
	updated_at = NOW()
WHERE id = $1 AND status = $2
`, actorID, strings.TrimSpace(reason))
}

func (r *ContentRepo) List(ctx context.Context, filter ContentFilter, limit, offset int) ([]model.ContentItem, error) {
	if r.pool == nil {
		return []model.ContentItem{}, nil
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	where, args := buildContentWhere(filter)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`
SELECT %s
FROM content_items
%s
ORDER BY created_at DESC, id DESC
LIMIT $%d OFFSET $%d
`, contentColumns, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list content items: %w", err)
	}
	defer rows.Close()

	return collectContentItems(rows)
}

func (r *ContentRepo) Count(ctx context.Context, filter ContentFilter) (int, error) {
	if r.pool == nil {
		return 0, nil
	}

	where, args := buildContentWhere(filter)
	var count int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM content_items "+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count content items: %w", err)
	}

	return count, nil
}

// ListForExport returns the full filtered set ordered alphabetically by
// title, which is the export layer's display-name sort.
func (r *ContentRepo) ListForExport(ctx context.Context, filter ContentFilter) ([]model.ContentItem, error) {
	if r.pool == nil {
		return []model.ContentItem{}, nil
	}

	where, args := buildContentWhere(filter)
	query := fmt.Sprintf(`
SELECT %s
FROM content_items
%s
ORDER BY LOWER(title) ASC, id ASC
`, contentColumns, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list content items for export: %w", err)
	}
	defer rows.Close()

	return collectContentItems(rows)
}

// ExpireAdsEndedBefore persists the expired state for approved ads whose
// last booking day is already over. Ads are the only kind that stores
// expiry; every other time-bounded state is derived at read time.
func (r *ContentRepo) ExpireAdsEndedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE content_items ci
SET status = 'expired', updated_at = NOW()
WHERE
	ci.kind = 'ad'
	AND ci.status = 'approved'
	AND NOT EXISTS (
		SELECT 1
		FROM bookings b
		WHERE b.ad_id = ci.id
		  AND b.status = 'approved'
		  AND b.to_date >= $1::date
	)
	AND EXISTS (
		SELECT 1
		FROM bookings b
		WHERE b.ad_id = ci.id
		  AND b.status = 'approved'
	)
`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("expire ended ads: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *ContentRepo) guardedExec(ctx context.Context, id int64, expected enums.ModerationStatus, query string, extraArgs ...interface{}) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return fmt.Errorf("invalid content id")
	}

	args := append([]interface{}{id, string(expected)}, extraArgs...)
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("transition content status: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Distinguish a missing row from a lost status race.
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrStaleStatus
}

func buildContentWhere(filter ContentFilter) (string, []interface{}) {
	clauses := make([]string, 0, 8)
	args := make([]interface{}, 0, 8)

	add := func(clause string, value interface{}) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.Kind != "" {
		add("kind = $%d", string(filter.Kind))
	}
	if filter.Status != "" {
		add("status = $%d", string(filter.Status))
	}
	if filter.OwnerID > 0 {
		add("owner_id = $%d", filter.OwnerID)
	}
	if strings.TrimSpace(filter.Category) != "" {
		add("LOWER(category) = LOWER($%d)", strings.TrimSpace(filter.Category))
	}
	if strings.TrimSpace(filter.City) != "" {
		add("LOWER(city) = LOWER($%d)", strings.TrimSpace(filter.City))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, "%"+q+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR body ILIKE $%d OR category ILIKE $%d)", n, n, n))
	}
	if !filter.CreatedFrom.IsZero() {
		add("created_at >= $%d", filter.CreatedFrom.UTC())
	}
	if !filter.CreatedTo.IsZero() {
		add("created_at <= $%d", filter.CreatedTo.UTC())
	}

	if len(clauses) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

func scanContentItem(row pgx.Row) (model.ContentItem, error) {
	var item model.ContentItem
	err := row.Scan(
		&item.ID,
		&item.Kind,
		&item.OwnerID,
		&item.Title,
		&item.Body,
		&item.Category,
		&item.City,
		&item.ImageURL,
		&item.ContactPhone,
		&item.Status,
		&item.ApprovedAt,
		&item.ApprovedBy,
		&item.RejectedBy,
		&item.RejectionReason,
		&item.RemovedBy,
		&item.RemoveReason,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	return item, err
}

func collectContentItems(rows pgx.Rows) ([]model.ContentItem, error) {
	items := make([]model.ContentItem, 0, 16)
	for rows.Next() {
		item, err := scanContentItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content item: %w", err)
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate content items: %w", rows.Err())
	}
	return items, nil
}
