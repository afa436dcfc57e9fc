package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/enums"
	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/model"
	pgrepo "github.com/aadrika123/Mauryavansham-sub002/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("actor may not touch this profile")
	ErrNotFound   = errors.New("profile not found")
)

const maxNameLen = 120

type ProfileStore interface {
	Upsert(ctx context.Context, p model.Profile) (model.Profile, error)
	GetByUserID(ctx context.Context, userID int64) (model.Profile, error)
	Deactivate(ctx context.Context, userID int64, reason, review string) error
	Reactivate(ctx context.Context, userID int64) error
	SetVerified(ctx context.Context, userID int64, verified bool) error
}

// UpdateInput carries the owner-editable profile fields. Verification and
// activity flags are managed through their own operations.
type UpdateInput struct {
	Name          string
	Gender        string
	Birthdate     *time.Time
	City          string
	Occupation    string
	Education     string
	MaritalStatus string
	About         string
	PhotoURL      string
}

type Service struct {
	store ProfileStore
	now   func() time.Time
}

func NewService(store ProfileStore) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// Save creates or replaces the caller's own profile card.
func (s *Service) Save(ctx context.Context, userID int64, in UpdateInput) (model.Profile, error) {
	if userID <= 0 {
		return model.Profile{}, fmt.Errorf("invalid user id: %w", ErrValidation)
	}
	if s.store == nil {
		return model.Profile{}, fmt.Errorf("profile store is nil")
	}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return model.Profile{}, fmt.Errorf("name is required: %w", ErrValidation)
	}
	if len(in.Name) > maxNameLen {
		return model.Profile{}, fmt.Errorf("name is too long: %w", ErrValidation)
	}
	if in.Birthdate != nil && in.Birthdate.After(s.now()) {
		return model.Profile{}, fmt.Errorf("birthdate is in the future: %w", ErrValidation)
	}

	profile, err := s.store.Upsert(ctx, model.Profile{
		UserID:        userID,
		Name:          in.Name,
		Gender:        strings.ToLower(strings.TrimSpace(in.Gender)),
		Birthdate:     in.Birthdate,
		City:          strings.TrimSpace(in.City),
		Occupation:    strings.TrimSpace(in.Occupation),
		Education:     strings.TrimSpace(in.Education),
		MaritalStatus: strings.ToLower(strings.TrimSpace(in.MaritalStatus)),
		About:         strings.TrimSpace(in.About),
		PhotoURL:      strings.TrimSpace(in.PhotoURL),
		IsActive:      true,
	})
	if err != nil {
		return model.Profile{}, fmt.Errorf("upsert profile: %w", err)
	}

	return profile, nil
}

func (s *Service) Get(ctx context.Context, userID int64) (model.Profile, error) {
	if userID <= 0 {
		return model.Profile{}, fmt.Errorf("invalid user id: %w", ErrValidation)
	}
	profile, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		return model.Profile{}, s.mapStoreError(err)
	}
	return profile, nil
}

// Deactivate hides the profile from the directory. The reason is required,
// the review text is the member's optional parting note.
func (s *Service) Deactivate(ctx context.Context, userID, actorID int64, role enums.Role, reason, review string) error {
	if err := s.authorize(userID, actorID, role); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("deactivation reason is required: %w", ErrValidation)
	}

	if err := s.store.Deactivate(ctx, userID, reason, strings.TrimSpace(review)); err != nil {
		return s.mapStoreError(err)
	}
	return nil
}

func (s *Service) Reactivate(ctx context.Context, userID, actorID int64, role enums.Role) error {
	if err := s.authorize(userID, actorID, role); err != nil {
		return err
	}
	if err := s.store.Reactivate(ctx, userID); err != nil {
		return s.mapStoreError(err)
	}
	return nil
}

// SetVerified toggles the moderator-granted verification badge.
func (s *Service) SetVerified(ctx context.Context, userID int64, role enums.Role, verified bool) error {
	if !role.IsModerator() {
		return ErrForbidden
	}
	if userID <= 0 {
		return fmt.Errorf("invalid user id: %w", ErrValidation)
	}
	if err := s.store.SetVerified(ctx, userID, verified); err != nil {
		return s.mapStoreError(err)
	}
	return nil
}

func (s *Service) authorize(userID, actorID int64, role enums.Role) error {
	if userID <= 0 || actorID <= 0 {
		return fmt.Errorf("invalid user id: %w", ErrValidation)
	}
	if userID != actorID && !role.IsModerator() {
		return ErrForbidden
	}
	return nil
}

func (s *Service) mapStoreError(err error) error {
	if errors.Is(err, pgrepo.ErrProfileNotFound) {
		return ErrNotFound
	}
	return err
}
