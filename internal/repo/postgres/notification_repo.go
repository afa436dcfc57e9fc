package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/model"
)

type NotificationRepo struct {
	pool *pgxpool.Pool
}

func NewNotificationRepo(pool *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

func (r *NotificationRepo) Insert(ctx context.Context, n model.Notification) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if n.RecipientID <= 0 || strings.TrimSpace(n.Message) == "" {
		return fmt.Errorf("invalid notification payload")
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO notifications (recipient_id, kind, message, created_at)
VALUES ($1, $2, $3, NOW())
`, n.RecipientID, n.Kind, n.Message); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}

	return nil
}

// ListSince is the pull interface for clients: everything newer than the
// given timestamp, oldest first.
func (r *NotificationRepo) ListSince(ctx context.Context, recipientID int64, since time.Time, limit int) ([]model.Notification, error) {
	if r.pool == nil {
		return []model.Notification{}, nil
	}
	if recipientID <= 0 {
		return nil, fmt.Errorf("invalid recipient id")
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, recipient_id, kind, message, created_at
FROM notifications
WHERE recipient_id = $1 AND created_at > $2
ORDER BY created_at ASC, id ASC
LIMIT $3
`, recipientID, since.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	items := make([]model.Notification, 0, limit)
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Kind, &n.Message, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		items = append(items, n)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate notifications: %w", rows.Err())
	}

	return items, nil
}
