package reports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/enums"
	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/model"
	pgrepo "github.com/aadrika123/Mauryavansham-sub002/internal/repo/postgres"
)

type fakeProfileExport struct {
	profiles []model.Profile
}

func (s *fakeProfileExport) ListForExport(_ context.Context, _ pgrepo.ProfileFilter) ([]model.Profile, error) {
	return s.profiles, nil
}

type fakeContentExport struct {
	items []model.ContentItem
	got   pgrepo.ContentFilter
}

func (s *fakeContentExport) ListForExport(_ context.Context, filter pgrepo.ContentFilter) ([]model.ContentItem, error) {
	s.got = filter
	return s.items, nil
}

type fakeUploader struct {
	objects map[string][]byte
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: make(map[string][]byte)}
}

func (u *fakeUploader) Upload(_ context.Context, objectName, _ string, data []byte) error {
	u.objects[objectName] = data
	return nil
}

func (u *fakeUploader) PresignedURL(_ context.Context, objectName string, _ time.Duration) (string, error) {
	return "https://s3.example.com/" + objectName + "?signed", nil
}

func readRows(t *testing.T, data []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	return rows
}

func TestExportProfiles(t *testing.T) {
	created := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeProfileExport{profiles: []model.Profile{
		{UserID: 1, Name: "Kavya Maurya", Gender: "female", City: "Lucknow", IsActive: true, IsVerified: true, CreatedAt: created},
		{UserID: 2, Name: "Rohit Verma", Gender: "male", City: "Delhi", IsActive: true, CreatedAt: created},
	}}
	uploader := newFakeUploader()
	svc := NewService(store, nil, uploader, time.Minute)

	export, err := svc.ExportProfiles(context.Background(), enums.RoleAdmin, pgrepo.ProfileFilter{},
		[]string{"gender", "verified"})
	if err != nil {
		t.Fatalf("ExportProfiles: %v", err)
	}
	if export.Rows != 2 {
		t.Fatalf("rows = %d, want 2", export.Rows)
	}
	if !strings.HasPrefix(export.ObjectName, "exports/profiles-") || !strings.HasSuffix(export.ObjectName, ".xlsx") {
		t.Fatalf("object name = %q", export.ObjectName)
	}
	if !strings.Contains(export.URL, export.ObjectName) {
		t.Fatalf("url = %q", export.URL)
	}

	rows := readRows(t, uploader.objects[export.ObjectName])
	if len(rows) != 3 {
		t.Fatalf("sheet rows = %d, want 3", len(rows))
	}
	want := []string{"User ID", "Name", "City", "Gender", "Verified"}
	for i, header := range want {
		if rows[0][i] != header {
			t.Fatalf("header = %v, want %v", rows[0], want)
		}
	}
	if rows[1][1] != "Kavya Maurya" || rows[1][4] != "yes" {
		t.Fatalf("row 1 = %v", rows[1])
	}
	if rows[2][1] != "Rohit Verma" || rows[2][4] != "no" {
		t.Fatalf("row 2 = %v", rows[2])
	}
}

func TestExportProfilesMandatoryColumnsOnly(t *testing.T) {
	store := &fakeProfileExport{profiles: []model.Profile{
		{UserID: 1, Name: "Kavya Maurya", Gender: "female", City: "Lucknow", IsActive: true},
	}}
	uploader := newFakeUploader()
	svc := NewService(store, nil, uploader, time.Minute)

	export, err := svc.ExportProfiles(context.Background(), enums.RoleAdmin, pgrepo.ProfileFilter{}, nil)
	if err != nil {
		t.Fatalf("ExportProfiles: %v", err)
	}

	rows := readRows(t, uploader.objects[export.ObjectName])
	if len(rows[0]) != 3 {
		t.Fatalf("header = %v, want the three mandatory columns", rows[0])
	}
	if rows[0][0] != "User ID" || rows[0][1] != "Name" || rows[0][2] != "City" {
		t.Fatalf("header = %v", rows[0])
	}
}

func TestExportProfilesUnknownColumn(t *testing.T) {
	svc := NewService(&fakeProfileExport{}, nil, newFakeUploader(), time.Minute)

	_, err := svc.ExportProfiles(context.Background(), enums.RoleAdmin, pgrepo.ProfileFilter{},
		[]string{"password_hash"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestExportProfilesRequiresModerator(t *testing.T) {
	svc := NewService(&fakeProfileExport{}, nil, newFakeUploader(), time.Minute)

	if _, err := svc.ExportProfiles(context.Background(), enums.RoleUser, pgrepo.ProfileFilter{}, nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestExportProfilesEmptyResultIsValidFile(t *testing.T) {
	uploader := newFakeUploader()
	svc := NewService(&fakeProfileExport{}, nil, uploader, time.Minute)

	export, err := svc.ExportProfiles(context.Background(), enums.RoleAdmin, pgrepo.ProfileFilter{}, nil)
	if err != nil {
		t.Fatalf("ExportProfiles: %v", err)
	}
	if export.Rows != 0 {
		t.Fatalf("rows = %d, want 0", export.Rows)
	}

	rows := readRows(t, uploader.objects[export.ObjectName])
	if len(rows) != 1 {
		t.Fatalf("sheet rows = %d, want header only", len(rows))
	}
}

func TestExportContentAppliesKind(t *testing.T) {
	reason := "off topic"
	store := &fakeContentExport{items: []model.ContentItem{
		{ID: 1, Kind: enums.ContentKindBlog, Title: "Community history", Status: enums.ModerationStatusApproved},
		{ID: 2, Kind: enums.ContentKindBlog, Title: "Another post", Status: enums.ModerationStatusRejected, RejectionReason: &reason},
	}}
	uploader := newFakeUploader()
	svc := NewService(nil, store, uploader, time.Minute)

	export, err := svc.ExportContent(context.Background(), enums.RoleSuperAdmin, enums.ContentKindBlog,
		pgrepo.ContentFilter{}, []string{"rejection_reason"})
	if err != nil {
		t.Fatalf("ExportContent: %v", err)
	}
	if store.got.Kind != enums.ContentKindBlog {
		t.Fatalf("filter kind = %q", store.got.Kind)
	}
	if !strings.HasPrefix(export.ObjectName, "exports/blogs-") {
		t.Fatalf("object name = %q", export.ObjectName)
	}

	rows := readRows(t, uploader.objects[export.ObjectName])
	if len(rows) != 3 {
		t.Fatalf("sheet rows = %d, want 3", len(rows))
	}
	if rows[0][4] != "Rejection Reason" {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[2][4] != "off topic" {
		t.Fatalf("row 2 = %v", rows[2])
	}
}

func TestExportContentUnknownKind(t *testing.T) {
	svc := NewService(nil, &fakeContentExport{}, newFakeUploader(), time.Minute)

	if _, err := svc.ExportContent(context.Background(), enums.RoleAdmin, "podcast", pgrepo.ContentFilter{}, nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestExportObjectNamesAreUnique(t *testing.T) {
	uploader := newFakeUploader()
	svc := NewService(&fakeProfileExport{}, nil, uploader, time.Minute)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		export, err := svc.ExportProfiles(context.Background(), enums.RoleAdmin, pgrepo.ProfileFilter{}, nil)
		if err != nil {
			t.Fatalf("export %d: %v", i, err)
		}
		if seen[export.ObjectName] {
			t.Fatalf("duplicate object name %q", export.ObjectName)
		}
		seen[export.ObjectName] = true
	}
}

func TestBuildProfileWorkbookLargeBatch(t *testing.T) {
	var profiles []model.Profile
	for i := 1; i <= 200; i++ {
		profiles = append(profiles, model.Profile{
			UserID: int64(i),
			Name:   fmt.Sprintf("Member %03d", i),
		})
	}

	data, err := BuildProfileWorkbook(profiles, []string{"registered"})
	if err != nil {
		t.Fatalf("BuildProfileWorkbook: %v", err)
	}

	rows := readRows(t, data)
	if len(rows) != 201 {
		t.Fatalf("sheet rows = %d, want 201", len(rows))
	}
}
