package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/model"
)

var ErrProfileNotFound = errors.New("profile not found")

const profileColumns = `
user_id, name, gender, birthdate, city, occupation, education, marital_status,
about, COALESCE(photo_url, ''), is_active, is_verified,
deactivate_reason, deactivate_review, created_at, updated_at`

// ProfileFilter mirrors the directory contract for member profiles: the
// free-text query matches name, city, occupation or education.
type ProfileFilter struct {
	Query         string
	Gender        string
	City          string
	MaritalStatus string
	OnlyActive    bool
	OnlyVerified  bool
	CreatedFrom   time.Time
	CreatedTo     time.Time
}

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

func (r *ProfileRepo) Upsert(ctx context.Context, p model.Profile) (model.Profile, error) {
	if r.pool == nil {
		return model.Profile{}, fmt.Errorf("postgres pool is nil")
	}
	if p.UserID <= 0 {
		return model.Profile{}, fmt.Errorf("invalid profile payload")
	}

	row := r.pool.QueryRow(ctx, `
INSERT INTO profiles (
	user_id, name, gender, birthdate, city, occupation, education,
	marital_status, about, photo_url, is_active, is_verified, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), TRUE, FALSE, NOW(), NOW())
ON CONFLICT (user_id) DO UPDATE SET
	name = EXCLUDED.name,
	gender = EXCLUDED.gender,
	birthdate = EXCLUDED.birthdate,
	city = EXCLUDED.city,
	occupation = EXCLUDED.occupation,
	education = EXCLUDED.education,
	marital_status = EXCLUDED.marital_status,
	about = EXCLUDED.about,
	photo_url = EXCLUDED.photo_url,
	updated_at = NOW()
RETURNING `+profileColumns+`
`, p.UserID, p.Name, p.Gender, p.Birthdate, p.City, p.Occupation,
		p.Education, p.MaritalStatus, p.About, p.PhotoURL)

	saved, err := scanProfile(row)
	if err != nil {
		return model.Profile{}, fmt.Errorf("upsert profile: %w", err)
	}
	return saved, nil
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID int64) (model.Profile, error) {
	if r.pool == nil {
		return model.Profile{}, fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return model.Profile{}, fmt.Errorf("invalid user id")
	}

	row := r.pool.QueryRow(ctx, `
SELECT `+profileColumns+`
FROM profiles
WHERE user_id = $1
LIMIT 1
`, userID)

	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Profile{}, ErrProfileNotFound
		}
		return model.Profile{}, fmt.Errorf("query profile: %w", err)
	}
	return profile, nil
}

// Deactivate flags the profile inactive and records why. Profiles are
// never deleted.
func (r *ProfileRepo) Deactivate(ctx context.Context, userID int64, reason, review string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return fmt.Errorf("invalid user id")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE profiles
SET
	is_active = FALSE,
	deactivate_reason = $2,
	deactivate_review = NULLIF($3, ''),
	updated_at = NOW()
WHERE user_id = $1
`, userID, strings.TrimSpace(reason), strings.TrimSpace(review))
	if err != nil {
		return fmt.Errorf("deactivate profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}

func (r *ProfileRepo) Reactivate(ctx context.Context, userID int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return fmt.Errorf("invalid user id")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE profiles
SET
	is_active = TRUE,
	deactivate_reason = NULL,
	deactivate_review = NULL,
	updated_at = NOW()
WHERE user_id = $1
`, userID)
	if err != nil {
		return fmt.Errorf("reactivate profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}

func (r *ProfileRepo) SetVerified(ctx context.Context, userID int64, verified bool) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return fmt.Errorf("invalid user id")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE profiles
SET is_verified = $2, updated_at = NOW()
WHERE user_id = $1
`, userID, verified)
	if err != nil {
		return fmt.Errorf("set profile verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}

func (r *ProfileRepo) Search(ctx context.Context, filter ProfileFilter, limit, offset int) ([]model.Profile, error) {
	if r.pool == nil {
		return []model.Profile{}, nil
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	where, args := buildProfileWhere(filter)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`
SELECT %s
FROM profiles
%s
ORDER BY LOWER(name) ASC, user_id ASC
LIMIT $%d OFFSET $%d
`, profileColumns, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search profiles: %w", err)
	}
	defer rows.Close()

	items := make([]model.Profile, 0, 16)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		items = append(items, profile)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate profiles: %w", rows.Err())
	}

	return items, nil
}

func (r *ProfileRepo) CountSearch(ctx context.Context, filter ProfileFilter) (int, error) {
	if r.pool == nil {
		return 0, nil
	}

	where, args := buildProfileWhere(filter)
	var count int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM profiles "+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}

	return count, nil
}

func (r *ProfileRepo) ListForExport(ctx context.Context, filter ProfileFilter) ([]model.Profile, error) {
	if r.pool == nil {
		return []model.Profile{}, nil
	}

	where, args := buildProfileWhere(filter)
	query := fmt.Sprintf(`
SELECT %s
FROM profiles
%s
ORDER BY LOWER(name) ASC, user_id ASC
`, profileColumns, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list profiles for export: %w", err)
	}
	defer rows.Close()

	items := make([]model.Profile, 0, 16)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		items = append(items, profile)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate profiles: %w", rows.Err())
	}

	return items, nil
}

func buildProfileWhere(filter ProfileFilter) (string, []interface{}) {
	clauses := make([]string, 0, 8)
	args := make([]interface{}, 0, 8)

	add := func(clause string, value interface{}) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, "%"+q+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(
			"(name ILIKE $%d OR city ILIKE $%d OR occupation ILIKE $%d OR education ILIKE $%d)", n, n, n, n))
	}
	if strings.TrimSpace(filter.Gender) != "" {
		add("LOWER(gender) = LOWER($%d)", strings.TrimSpace(filter.Gender))
	}
	if strings.TrimSpace(filter.City) != "" {
		add("LOWER(city) = LOWER($%d)", strings.TrimSpace(filter.City))
	}
	if strings.TrimSpace(filter.MaritalStatus) != "" {
		add("LOWER(marital_status) = LOWER($%d)", strings.TrimSpace(filter.MaritalStatus))
	}
	if filter.OnlyActive {
		clauses = append(clauses, "is_active = TRUE")
	}
	if filter.OnlyVerified {
		clauses = append(clauses, "is_verified = TRUE")
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

func scanProfile(row pgx.Row) (model.Profile, error) {
	var p model.Profile
	err := row.Scan(
		&p.UserID,
		&p.Name,
		&p.Gender,
		&p.Birthdate,
		&p.City,
		&p.Occupation,
		&p.Education,
		&p.MaritalStatus,
		&p.About,
		&p.PhotoURL,
		&p.IsActive,
		&p.IsVerified,
		&p.DeactivateReason,
		&p.DeactivateReview,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
