package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/enums"
	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/model"
	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/rules"
	pgrepo "github.com/aadrika123/Mauryavansham-sub002/internal/repo/postgres"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrForbidden         = errors.New("actor is not allowed to perform this transition")
	ErrInvalidTransition = errors.New("transition is not allowed from the current status")
	ErrNotFound          = errors.New("content item not found")
)

// Actor is the identity performing a transition, resolved fresh from the
// request context on every call.
type Actor struct {
	ID   int64
	Role enums.Role
}

type ContentStore interface {
	Insert(ctx context.Context, item model.ContentItem) (model.ContentItem, error)
	UpdateFields(ctx context.Context, id int64, title, body, category, city, imageURL, contactPhone string) error
	GetByID(ctx context.Context, id int64) (model.ContentItem, error)
	MarkPending(ctx context.Context, id int64, expected enums.ModerationStatus) error
	MarkApproved(ctx context.Context, id int64, expected enums.ModerationStatus, actorID int64) error
	MarkRejected(ctx context.Context, id int64, expected enums.ModerationStatus, actorID int64, reason string) error
	MarkRemoved(ctx context.Context, id int64, expected enums.ModerationStatus, actorID int64, reason string) error
	List(ctx context.Context, filter pgrepo.ContentFilter, limit, offset int) ([]model.ContentItem, error)
	Count(ctx context.Context, filter pgrepo.ContentFilter) (int, error)
}

// Notifier delivers a fire-and-forget message to the item owner. Failures
// never abort the transition.
type Notifier interface {
	Notify(ctx context.Context, recipientID int64, kind, message string)
}

type Service struct {
	store    ContentStore
	notifier Notifier
}

func NewService(store ContentStore, notifier Notifier) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
	}
}

// DraftInput carries the owner-editable fields of a content item.
type DraftInput struct {
	Title        string
	Body         string
	Category     string
	City         string
	ImageURL     string
	ContactPhone string
}

// CreateDraft stores a new item in draft. Nothing is visible publicly
// until the draft is submitted and approved.
func (s *Service) CreateDraft(ctx context.Context, kind enums.ContentKind, ownerID int64, in DraftInput) (model.ContentItem, error) {
	if !kind.Valid() {
		return model.ContentItem{}, fmt.Errorf("unknown content kind %q: %w", kind, ErrValidation)
	}
	if ownerID <= 0 {
		return model.ContentItem{}, fmt.Errorf("invalid owner id: %w", ErrValidation)
	}
	if strings.TrimSpace(in.Title) == "" {
		return model.ContentItem{}, fmt.Errorf("title is required: %w", ErrValidation)
	}
	if s.store == nil {
		return model.ContentItem{}, fmt.Errorf("content store is nil")
	}

	return s.store.Insert(ctx, model.ContentItem{
		Kind:         kind,
		OwnerID:      ownerID,
		Title:        strings.TrimSpace(in.Title),
		Body:         in.Body,
		Category:     strings.TrimSpace(in.Category),
		City:         strings.TrimSpace(in.City),
		ImageURL:     strings.TrimSpace(in.ImageURL),
		ContactPhone: strings.TrimSpace(in.ContactPhone),
		Status:       enums.ModerationStatusDraft,
	})
}

// UpdateDraft edits an item that is not yet live. Approved or removed
// items cannot be edited in place, the owner resubmits instead.
func (s *Service) UpdateDraft(ctx context.Context, itemID int64, actor Actor, in DraftInput) (model.ContentItem, error) {
	if strings.TrimSpace(in.Title) == "" {
		return model.ContentItem{}, fmt.Errorf("title is required: %w", ErrValidation)
	}

	item, err := s.load(ctx, itemID, actor)
	if err != nil {
		return model.ContentItem{}, err
	}
	if item.OwnerID != actor.ID && !actor.Role.IsModerator() {
		return model.ContentItem{}, ErrForbidden
	}
	switch item.Status {
	case enums.ModerationStatusDraft, enums.ModerationStatusPending, enums.ModerationStatusRejected:
	default:
		return model.ContentItem{}, fmt.Errorf("cannot edit a %s item: %w", item.Status, ErrInvalidTransition)
	}

	err = s.store.UpdateFields(ctx, itemID,
		strings.TrimSpace(in.Title), in.Body, strings.TrimSpace(in.Category),
		strings.TrimSpace(in.City), strings.TrimSpace(in.ImageURL), strings.TrimSpace(in.ContactPhone))
	if err != nil {
		return model.ContentItem{}, s.mapStoreError(err)
	}

	return s.store.GetByID(ctx, itemID)
}

// Get returns an item. Non-owners only see approved content.
func (s *Service) Get(ctx context.Context, itemID int64, actor Actor) (model.ContentItem, error) {
	item, err := s.load(ctx, itemID, actor)
	if err != nil {
		return model.ContentItem{}, err
	}
	if item.Status != enums.ModerationStatusApproved &&
		item.OwnerID != actor.ID && !actor.Role.IsModerator() {
		return model.ContentItem{}, ErrNotFound
	}
	return item, nil
}

// ListOwn returns every item of one owner regardless of status.
func (s *Service) ListOwn(ctx context.Context, ownerID int64, kind enums.ContentKind, limit, offset int) ([]model.ContentItem, int, error) {
	if ownerID <= 0 {
		return nil, 0, fmt.Errorf("invalid owner id: %w", ErrValidation)
	}

	filter := pgrepo.ContentFilter{Kind: kind, OwnerID: ownerID}
	total, err := s.store.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.store.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Submit moves an owner's draft (or rejected item being resubmitted) into
// the moderation queue.
func (s *Service) Submit(ctx context.Context, itemID int64, actor Actor) (model.ContentItem, error) {
	item, err := s.gate(ctx, itemID, actor, enums.ModerationStatusPending)
	if err != nil {
		return model.ContentItem{}, err
	}

	if err := s.store.MarkPending(ctx, itemID, item.Status); err != nil {
		return model.ContentItem{}, s.mapStoreError(err)
	}

	return s.store.GetByID(ctx, itemID)
}

func (s *Service) Approve(ctx context.Context, itemID int64, actor Actor) (model.ContentItem, error) {
	item, err := s.gate(ctx, itemID, actor, enums.ModerationStatusApproved)
	if err != nil {
		return model.ContentItem{}, err
	}

	if err := s.store.MarkApproved(ctx, itemID, item.Status, actor.ID); err != nil {
		return model.ContentItem{}, s.mapStoreError(err)
	}

	s.notify(ctx, item.OwnerID, "moderation_approved",
		fmt.Sprintf("Your %s %q has been approved.", item.Kind, item.Title))

	return s.store.GetByID(ctx, itemID)
}

func (s *Service) Reject(ctx context.Context, itemID int64, actor Actor, reason string) (model.ContentItem, error) {
	if strings.TrimSpace(reason) == "" {
		return model.ContentItem{}, fmt.Errorf("rejection reason is required: %w", ErrValidation)
	}

	item, err := s.gate(ctx, itemID, actor, enums.ModerationStatusRejected)
	if err != nil {
		return model.ContentItem{}, err
	}

	if err := s.store.MarkRejected(ctx, itemID, item.Status, actor.ID, reason); err != nil {
		return model.ContentItem{}, s.mapStoreError(err)
	}

	s.notify(ctx, item.OwnerID, "moderation_rejected",
		fmt.Sprintf("Your %s %q has been rejected: %s", item.Kind, item.Title, strings.TrimSpace(reason)))

	return s.store.GetByID(ctx, itemID)
}

// Remove is terminal. Owners may take down their own items, moderators
// anyone's.
func (s *Service) Remove(ctx context.Context, itemID int64, actor Actor, reason string) (model.ContentItem, error) {
	if strings.TrimSpace(reason) == "" {
		return model.ContentItem{}, fmt.Errorf("remove reason is required: %w", ErrValidation)
	}

	item, err := s.gate(ctx, itemID, actor, enums.ModerationStatusRemoved)
	if err != nil {
		return model.ContentItem{}, err
	}

	if err := s.store.MarkRemoved(ctx, itemID, item.Status, actor.ID, reason); err != nil {
		return model.ContentItem{}, s.mapStoreError(err)
	}

	return s.store.GetByID(ctx, itemID)
}

// Queue lists pending items oldest first for the admin review screen.
func (s *Service) Queue(ctx context.Context, kind enums.ContentKind, limit, offset int) ([]model.ContentItem, int, error) {
	if s.store == nil {
		return nil, 0, fmt.Errorf("content store is nil")
	}

	filter := pgrepo.ContentFilter{
		Kind:   kind,
		Status: enums.ModerationStatusPending,
	}

	total, err := s.store.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.store.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (s *Service) load(ctx context.Context, itemID int64, actor Actor) (model.ContentItem, error) {
	if itemID <= 0 {
		return model.ContentItem{}, fmt.Errorf("invalid content id: %w", ErrValidation)
	}
	if actor.ID <= 0 {
		return model.ContentItem{}, fmt.Errorf("invalid actor id: %w", ErrValidation)
	}
	if s.store == nil {
		return model.ContentItem{}, fmt.Errorf("content store is nil")
	}

	item, err := s.store.GetByID(ctx, itemID)
	if err != nil {
		return model.ContentItem{}, s.mapStoreError(err)
	}
	return item, nil
}

// gate loads the item and applies the state table first, then the actor
// gate, so an illegal move reports InvalidTransition even for moderators.
func (s *Service) gate(ctx context.Context, itemID int64, actor Actor, target enums.ModerationStatus) (model.ContentItem, error) {
	item, err := s.load(ctx, itemID, actor)
	if err != nil {
		return model.ContentItem{}, err
	}

	if !rules.CanTransition(item.Status, target) {
		return model.ContentItem{}, fmt.Errorf("%s -> %s: %w", item.Status, target, ErrInvalidTransition)
	}
	if !rules.TransitionAllowedFor(item.Status, target, actor.Role, actor.ID == item.OwnerID) {
		return model.ContentItem{}, ErrForbidden
	}

	return item, nil
}

func (s *Service) notify(ctx context.Context, recipientID int64, kind, message string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, recipientID, kind, message)
}

func (s *Service) mapStoreError(err error) error {
	switch {
	case errors.Is(err, pgrepo.ErrContentNotFound):
		return ErrNotFound
	case errors.Is(err, pgrepo.ErrStaleStatus):
		return ErrInvalidTransition
	default:
		return err
	}
}
