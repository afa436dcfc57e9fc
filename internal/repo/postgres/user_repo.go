package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/enums"
	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/model"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, email, passwordHash string, role enums.Role) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(email) == "" || passwordHash == "" {
		return model.User{}, fmt.Errorf("invalid user payload")
	}

	var user model.User
	err := r.pool.QueryRow(ctx, `
INSERT INTO users (email, password_hash, role, is_active, created_at, updated_at)
VALUES (LOWER($1), $2, $3, TRUE, NOW(), NOW())
RETURNING id, email, password_hash, role, is_active, deactivation_reason, created_at, updated_at
`, strings.TrimSpace(email), passwordHash, string(role)).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&user.DeactivationReason,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.User{}, ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.queryOne(ctx, `
SELECT id, email, password_hash, role, is_active, deactivation_reason, created_at, updated_at
FROM users
WHERE email = LOWER($1)
LIMIT 1
`, strings.TrimSpace(email))
}

func (r *UserRepo) GetByID(ctx context.Context, userID int64) (model.User, error) {
	if userID <= 0 {
		return model.User{}, fmt.Errorf("invalid user id")
	}
	return r.queryOne(ctx, `
SELECT id, email, password_hash, role, is_active, deactivation_reason, created_at, updated_at
FROM users
WHERE id = $1
LIMIT 1
`, userID)
}

func (r *UserRepo) UpdateRole(ctx context.Context, userID int64, role enums.Role) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return fmt.Errorf("invalid user id")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE users
SET role = $2, updated_at = NOW()
WHERE id = $1
`, userID, string(role))
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *UserRepo) SetActive(ctx context.Context, userID int64, active bool, reason string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return fmt.Errorf("invalid user id")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE users
SET
	is_active = $2,
	deactivation_reason = NULLIF($3, ''),
	updated_at = NOW()
WHERE id = $1
`, userID, active, strings.TrimSpace(reason))
	if err != nil {
		return fmt.Errorf("set user active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *UserRepo) queryOne(ctx context.Context, query string, args ...interface{}) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}

	var user model.User
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&user.DeactivationReason,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("query user: %w", err)
	}

	return user, nil
}
