package notifications

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/model"
)

type fakeStore struct {
	notifications []model.Notification
	insertErr     error
}

func (s *fakeStore) Insert(_ context.Context, n model.Notification) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	n.ID = int64(len(s.notifications) + 1)
	s.notifications = append(s.notifications, n)
	return nil
}

func (s *fakeStore) ListSince(_ context.Context, recipientID int64, since time.Time, limit int) ([]model.Notification, error) {
	var out []model.Notification
	for _, n := range s.notifications {
		if n.RecipientID != recipientID {
			continue
		}
		if !since.IsZero() && !n.CreatedAt.After(since) {
			continue
		}
		out = append(out, n)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func TestNotifyAndFetch(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil)

	svc.Notify(context.Background(), 10, "moderation_approved", "Your ad was approved.")
	svc.Notify(context.Background(), 11, "moderation_rejected", "Your ad was rejected.")

	items, err := svc.FetchSince(context.Background(), 10, time.Time{}, 0)
	if err != nil {
		t.Fatalf("FetchSince: %v", err)
	}
	if len(items) != 1 || items[0].Kind != "moderation_approved" {
		t.Fatalf("items = %+v", items)
	}
}

func TestNotifySwallowsStoreFailure(t *testing.T) {
	store := &fakeStore{insertErr: errors.New("table missing")}
	svc := NewService(store, nil)

	// Must not panic or surface the error.
	svc.Notify(context.Background(), 10, "moderation_approved", "msg")
}

func TestNotifyIgnoresBlankMessage(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil)

	svc.Notify(context.Background(), 10, "x", "   ")
	if len(store.notifications) != 0 {
		t.Fatalf("notifications = %+v", store.notifications)
	}
}

func TestNotifyTruncatesLongMessage(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil)

	svc.Notify(context.Background(), 10, "x", strings.Repeat("a", maxMessageLen+50))
	if len(store.notifications) != 1 {
		t.Fatalf("notifications = %d", len(store.notifications))
	}
	if len(store.notifications[0].Message) != maxMessageLen {
		t.Fatalf("message len = %d", len(store.notifications[0].Message))
	}
}

func TestFetchSinceFiltersByTime(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	svc.now = func() time.Time { return base }
	svc.Notify(context.Background(), 10, "old", "before cutoff")
	svc.now = func() time.Time { return base.Add(time.Hour) }
	svc.Notify(context.Background(), 10, "new", "after cutoff")

	items, err := svc.FetchSince(context.Background(), 10, base.Add(30*time.Minute), 0)
	if err != nil {
		t.Fatalf("FetchSince: %v", err)
	}
	if len(items) != 1 || items[0].Kind != "new" {
		t.Fatalf("items = %+v", items)
	}
}

func TestFetchSinceInvalidRecipient(t *testing.T) {
	svc := NewService(&fakeStore{}, nil)
	if _, err := svc.FetchSince(context.Background(), 0, time.Time{}, 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestFetchSinceEmptyIsNotNil(t *testing.T) {
	svc := NewService(&fakeStore{}, nil)
	items, err := svc.FetchSince(context.Background(), 10, time.Time{}, 0)
	if err != nil {
		t.Fatalf("FetchSince: %v", err)
	}
	if items == nil {
		t.Fatal("items is nil")
	}
}
