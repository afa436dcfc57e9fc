package profiles

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/enums"
	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/model"
	pgrepo "github.com/aadrika123/Mauryavansham-sub002/internal/repo/postgres"
)

type fakeProfileStore struct {
	profiles map[int64]*model.Profile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[int64]*model.Profile)}
}

func (s *fakeProfileStore) Upsert(_ context.Context, p model.Profile) (model.Profile, error) {
	existing, ok := s.profiles[p.UserID]
	if ok {
		p.CreatedAt = existing.CreatedAt
		p.IsVerified = existing.IsVerified
	} else {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = time.Now()
	s.profiles[p.UserID] = &p
	return p, nil
}

func (s *fakeProfileStore) GetByUserID(_ context.Context, userID int64) (model.Profile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return model.Profile{}, pgrepo.ErrProfileNotFound
	}
	return *p, nil
}

func (s *fakeProfileStore) Deactivate(_ context.Context, userID int64, reason, review string) error {
	p, ok := s.profiles[userID]
	if !ok {
		return pgrepo.ErrProfileNotFound
	}
	p.IsActive = false
	p.DeactivateReason = &reason
	if review != "" {
		p.DeactivateReview = &review
	}
	return nil
}

func (s *fakeProfileStore) Reactivate(_ context.Context, userID int64) error {
	p, ok := s.profiles[userID]
	if !ok {
		return pgrepo.ErrProfileNotFound
	}
	p.IsActive = true
	p.DeactivateReason = nil
	p.DeactivateReview = nil
	return nil
}

func (s *fakeProfileStore) SetVerified(_ context.Context, userID int64, verified bool) error {
	p, ok := s.profiles[userID]
	if !ok {
		return pgrepo.ErrProfileNotFound
	}
	p.IsVerified = verified
	return nil
}

func TestSaveNormalizesFields(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewService(store)

	profile, err := svc.Save(context.Background(), 1, UpdateInput{
		Name:          "  Kavya Maurya  ",
		Gender:        "Female",
		City:          " Lucknow ",
		MaritalStatus: "Single",
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if profile.Name != "Kavya Maurya" {
		t.Fatalf("name = %q", profile.Name)
	}
	if profile.Gender != "female" || profile.MaritalStatus != "single" {
		t.Fatalf("gender = %q, marital = %q", profile.Gender, profile.MaritalStatus)
	}
	if !profile.IsActive {
		t.Fatal("new profile must be active")
	}
}

func TestSaveValidation(t *testing.T) {
	svc := NewService(newFakeProfileStore())
	future := time.Now().Add(48 * time.Hour)

	tests := []struct {
		name string
		in   UpdateInput
	}{
		{"empty name", UpdateInput{Name: "   "}},
		{"name too long", UpdateInput{Name: strings.Repeat("x", maxNameLen+1)}},
		{"future birthdate", UpdateInput{Name: "Kavya", Birthdate: &future}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Save(context.Background(), 1, tt.in); !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestDeactivateRequiresReason(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewService(store)
	if _, err := svc.Save(context.Background(), 1, UpdateInput{Name: "Kavya"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	err := svc.Deactivate(context.Background(), 1, 1, enums.RoleUser, "  ", "")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestDeactivateAndReactivate(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewService(store)
	if _, err := svc.Save(context.Background(), 1, UpdateInput{Name: "Kavya"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := svc.Deactivate(context.Background(), 1, 1, enums.RoleUser, "found a match", "great portal"); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	profile, err := svc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if profile.IsActive {
		t.Fatal("profile still active")
	}
	if profile.DeactivateReason == nil || *profile.DeactivateReason != "found a match" {
		t.Fatalf("reason = %v", profile.DeactivateReason)
	}

	if err := svc.Reactivate(context.Background(), 1, 1, enums.RoleUser); err != nil {
		t.Fatalf("Reactivate: %v", err)
	}
	profile, _ = svc.Get(context.Background(), 1)
	if !profile.IsActive || profile.DeactivateReason != nil {
		t.Fatalf("profile = %+v", profile)
	}
}

func TestDeactivateByStrangerForbidden(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewService(store)
	if _, err := svc.Save(context.Background(), 1, UpdateInput{Name: "Kavya"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := svc.Deactivate(context.Background(), 1, 99, enums.RoleUser, "spam", ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	// Admins can deactivate on the member's behalf.
	if err := svc.Deactivate(context.Background(), 1, 99, enums.RoleAdmin, "abuse report", ""); err != nil {
		t.Fatalf("admin deactivate: %v", err)
	}
}

func TestSetVerifiedRequiresModerator(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewService(store)
	if _, err := svc.Save(context.Background(), 1, UpdateInput{Name: "Kavya"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := svc.SetVerified(context.Background(), 1, enums.RoleUser, true); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if err := svc.SetVerified(context.Background(), 1, enums.RoleAdmin, true); err != nil {
		t.Fatalf("SetVerified: %v", err)
	}

	profile, _ := svc.Get(context.Background(), 1)
	if !profile.IsVerified {
		t.Fatal("profile not verified")
	}
}

func TestSavePreservesVerificationBadge(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewService(store)
	if _, err := svc.Save(context.Background(), 1, UpdateInput{Name: "Kavya"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := svc.SetVerified(context.Background(), 1, enums.RoleAdmin, true); err != nil {
		t.Fatalf("SetVerified: %v", err)
	}

	profile, err := svc.Save(context.Background(), 1, UpdateInput{Name: "Kavya M"})
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if !profile.IsVerified {
		t.Fatal("verification badge lost on edit")
	}
}

func TestGetNotFound(t *testing.T) {
	svc := NewService(newFakeProfileStore())
	if _, err := svc.Get(context.Background(), 7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
