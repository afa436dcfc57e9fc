package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/enums"
	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/model"
	pgrepo "github.com/aadrika123/Mauryavansham-sub002/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("actor may not manage this account")
	ErrNotFound   = errors.New("user not found")
)

type UserStore interface {
	GetByID(ctx context.Context, userID int64) (model.User, error)
	UpdateRole(ctx context.Context, userID int64, role enums.Role) error
	SetActive(ctx context.Context, userID int64, active bool, reason string) error
}

// SessionRevoker drops all live sessions for an account, used after a
// role change or deactivation so stale tokens stop working.
type SessionRevoker interface {
	DeleteAllForUser(ctx context.Context, userID int64) error
}

type Service struct {
	store    UserStore
	sessions SessionRevoker
}

func NewService(store UserStore, sessions SessionRevoker) *Service {
	return &Service{
		store:    store,
		sessions: sessions,
	}
}

func (s *Service) Get(ctx context.Context, userID int64) (model.User, error) {
	if userID <= 0 {
		return model.User{}, fmt.Errorf("invalid user id: %w", ErrValidation)
	}
	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, s.mapStoreError(err)
	}
	return user, nil
}

// ChangeRole grants or revokes moderator rights. Only a superadmin may do
// it, and not on their own account, so the last superadmin cannot lock
// everyone out.
func (s *Service) ChangeRole(ctx context.Context, userID, actorID int64, actorRole enums.Role, newRole enums.Role) (model.User, error) {
	if actorRole != enums.RoleSuperAdmin {
		return model.User{}, ErrForbidden
	}
	if userID <= 0 || actorID <= 0 {
		return model.User{}, fmt.Errorf("invalid user id: %w", ErrValidation)
	}
	if userID == actorID {
		return model.User{}, fmt.Errorf("cannot change own role: %w", ErrForbidden)
	}

	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, s.mapStoreError(err)
	}
	if user.Role == newRole {
		return user, nil
	}

	if err := s.store.UpdateRole(ctx, userID, newRole); err != nil {
		return model.User{}, s.mapStoreError(err)
	}
	s.revokeSessions(ctx, userID)

	user.Role = newRole
	return user, nil
}

// Deactivate blocks the account from logging in and kills its sessions.
func (s *Service) Deactivate(ctx context.Context, userID, actorID int64, actorRole enums.Role, reason string) error {
	if !actorRole.IsModerator() {
		return ErrForbidden
	}
	if userID <= 0 {
		return fmt.Errorf("invalid user id: %w", ErrValidation)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("deactivation reason is required: %w", ErrValidation)
	}

	target, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return s.mapStoreError(err)
	}
	// Admins cannot deactivate other moderators, only a superadmin can.
	if target.Role.IsModerator() && actorRole != enums.RoleSuperAdmin {
		return ErrForbidden
	}
	if userID == actorID {
		return fmt.Errorf("cannot deactivate own account: %w", ErrForbidden)
	}

	if err := s.store.SetActive(ctx, userID, false, reason); err != nil {
		return s.mapStoreError(err)
	}
	s.revokeSessions(ctx, userID)
	return nil
}

func (s *Service) Reactivate(ctx context.Context, userID int64, actorRole enums.Role) error {
	if !actorRole.IsModerator() {
		return ErrForbidden
	}
	if userID <= 0 {
		return fmt.Errorf("invalid user id: %w", ErrValidation)
	}
	if err := s.store.SetActive(ctx, userID, true, ""); err != nil {
		return s.mapStoreError(err)
	}
	return nil
}

// revokeSessions is best effort, a failure here must not roll back the
// account change itself.
func (s *Service) revokeSessions(ctx context.Context, userID int64) {
	if s.sessions == nil {
		return
	}
	_ = s.sessions.DeleteAllForUser(ctx, userID)
}

func (s *Service) mapStoreError(err error) error {
	if errors.Is(err, pgrepo.ErrUserNotFound) {
		return ErrNotFound
	}
	return err
}
