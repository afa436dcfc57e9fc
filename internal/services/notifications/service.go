package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/model"
)

var ErrValidation = errors.New("validation error")

const maxMessageLen = 1000

type Store interface {
	Insert(ctx context.Context, n model.Notification) error
	ListSince(ctx context.Context, recipientID int64, since time.Time, limit int) ([]model.Notification, error)
}

// Service persists in-portal notifications. Clients pull them with
// FetchSince instead of the portal pushing anything out.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Notify records a notification for the recipient. It is fire-and-forget
// for callers: a storage failure is logged, never returned, so a broken
// notifications table cannot block moderation decisions.
func (s *Service) Notify(ctx context.Context, recipientID int64, kind, message string) {
	if recipientID <= 0 || strings.TrimSpace(message) == "" {
		return
	}
	if len(message) > maxMessageLen {
		message = message[:maxMessageLen]
	}

	err := s.store.Insert(ctx, model.Notification{
		RecipientID: recipientID,
		Kind:        kind,
		Message:     message,
		CreatedAt:   s.now(),
	})
	if err != nil {
		s.logger.Error("store notification",
			zap.Int64("recipient_id", recipientID),
			zap.String("kind", kind),
			zap.Error(err))
		return
	}

	s.logger.Debug("notification stored",
		zap.Int64("recipient_id", recipientID),
		zap.String("kind", kind))
}

// FetchSince returns the recipient's notifications created after the
// given moment, oldest first. A zero since means everything retained.
func (s *Service) FetchSince(ctx context.Context, recipientID int64, since time.Time, limit int) ([]model.Notification, error) {
	if recipientID <= 0 {
		return nil, fmt.Errorf("invalid recipient id: %w", ErrValidation)
	}
	if s.store == nil {
		return nil, fmt.Errorf("notification store is nil")
	}

	items, err := s.store.ListSince(ctx, recipientID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	if items == nil {
		items = []model.Notification{}
	}
	return items, nil
}
