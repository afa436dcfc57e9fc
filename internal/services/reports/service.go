package reports

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/enums"
	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/model"
	pgrepo "github.com/aadrika123/Mauryavansham-sub002/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("exports are restricted to moderators")
)

const (
	sheetName = "Sheet1"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ProfileExportStore interface {
	ListForExport(ctx context.Context, filter pgrepo.ProfileFilter) ([]model.Profile, error)
}

type ContentExportStore interface {
	ListForExport(ctx context.Context, filter pgrepo.ContentFilter) ([]model.ContentItem, error)
}

type Uploader interface {
	Upload(ctx context.Context, objectName, contentType string, data []byte) error
	PresignedURL(ctx context.Context, objectName string, ttl time.Duration) (string, error)
}

// Export describes a generated spreadsheet parked in object storage. The
// URL is presigned and expires, the object itself stays until cleaned up.
type Export struct {
	ObjectName string    `json:"object_name"`
	URL        string    `json:"url"`
	Rows       int       `json:"rows"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type Service struct {
	profiles ProfileExportStore
	content  ContentExportStore
	uploader Uploader
	urlTTL   time.Duration
	now      func() time.Time
}

func NewService(profiles ProfileExportStore, content ContentExportStore, uploader Uploader, urlTTL time.Duration) *Service {
	if urlTTL <= 0 {
		urlTTL = 15 * time.Minute
	}

	return &Service{
		profiles: profiles,
		content:  content,
		uploader: uploader,
		urlTTL:   urlTTL,
		now:      time.Now,
	}
}

// ExportProfiles builds the member directory spreadsheet for the given
// filter and parks it in object storage. Mandatory columns always appear;
// columns names the optional ones to layer on. An empty result still
// produces a valid file with the header row.
func (s *Service) ExportProfiles(ctx context.Context, role enums.Role, filter pgrepo.ProfileFilter, columns []string) (Export, error) {
	if !role.IsModerator() {
		return Export{}, ErrForbidden
	}
	if s.profiles == nil || s.uploader == nil {
		return Export{}, fmt.Errorf("reports service is not wired")
	}

	items, err := s.profiles.ListForExport(ctx, filter)
	if err != nil {
		return Export{}, fmt.Errorf("list profiles for export: %w", err)
	}

	data, err := BuildProfileWorkbook(items, columns)
	if err != nil {
		return Export{}, err
	}

	return s.park(ctx, "profiles", data, len(items))
}

func (s *Service) ExportContent(ctx context.Context, role enums.Role, kind enums.ContentKind, filter pgrepo.ContentFilter, columns []string) (Export, error) {
	if !role.IsModerator() {
		return Export{}, ErrForbidden
	}
	if kind != "" && !kind.Valid() {
		return Export{}, fmt.Errorf("unknown content kind %q: %w", kind, ErrValidation)
	}
	if s.content == nil || s.uploader == nil {
		return Export{}, fmt.Errorf("reports service is not wired")
	}

	filter.Kind = kind
	items, err := s.content.ListForExport(ctx, filter)
	if err != nil {
		return Export{}, fmt.Errorf("list content for export: %w", err)
	}

	data, err := BuildContentWorkbook(items, columns)
	if err != nil {
		return Export{}, err
	}

	name := "content"
	if kind != "" {
		name = string(kind) + "s"
	}
	return s.park(ctx, name, data, len(items))
}

func (s *Service) park(ctx context.Context, prefix string, data []byte, rows int) (Export, error) {
	objectName := fmt.Sprintf("exports/%s-%s-%s.xlsx",
		prefix, s.now().UTC().Format("20060102"), uuid.NewString())

	if err := s.uploader.Upload(ctx, objectName, xlsxContentType, data); err != nil {
		return Export{}, fmt.Errorf("upload export: %w", err)
	}

	url, err := s.uploader.PresignedURL(ctx, objectName, s.urlTTL)
	if err != nil {
		return Export{}, fmt.Errorf("presign export: %w", err)
	}

	return Export{
		ObjectName: objectName,
		URL:        url,
		Rows:       rows,
		ExpiresAt:  s.now().Add(s.urlTTL),
	}, nil
}

// profileColumns and contentColumns describe every column an export can
// carry. The mandatory sets always open the sheet; callers pick optional
// columns by name and their order is preserved.
type profileColumn struct {
	header string
	value  func(model.Profile) interface{}
}

var profileMandatory = []profileColumn{
	{"User ID", func(p model.Profile) interface{} { return p.UserID }},
	{"Name", func(p model.Profile) interface{} { return p.Name }},
	{"City", func(p model.Profile) interface{} { return p.City }},
}

var profileOptional = map[string]profileColumn{
	"gender": {"Gender", func(p model.Profile) interface{} { return p.Gender }},
	"birthdate": {"Birthdate", func(p model.Profile) interface{} {
		if p.Birthdate == nil {
			return ""
		}
		return p.Birthdate.Format("2006-01-02")
	}},
	"occupation":     {"Occupation", func(p model.Profile) interface{} { return p.Occupation }},
	"education":      {"Education", func(p model.Profile) interface{} { return p.Education }},
	"marital_status": {"Marital Status", func(p model.Profile) interface{} { return p.MaritalStatus }},
	"verified":       {"Verified", func(p model.Profile) interface{} { return boolCell(p.IsVerified) }},
	"active":         {"Active", func(p model.Profile) interface{} { return boolCell(p.IsActive) }},
	"registered":     {"Registered", func(p model.Profile) interface{} { return p.CreatedAt.Format("2006-01-02") }},
}

type contentColumn struct {
	header string
	value  func(model.ContentItem) interface{}
}

var contentMandatory = []contentColumn{
	{"ID", func(c model.ContentItem) interface{} { return c.ID }},
	{"Kind", func(c model.ContentItem) interface{} { return string(c.Kind) }},
	{"Title", func(c model.ContentItem) interface{} { return c.Title }},
	{"Status", func(c model.ContentItem) interface{} { return string(c.Status) }},
}

var contentOptional = map[string]contentColumn{
	"category": {"Category", func(c model.ContentItem) interface{} { return c.Category }},
	"city":     {"City", func(c model.ContentItem) interface{} { return c.City }},
	"owner_id": {"Owner ID", func(c model.ContentItem) interface{} { return c.OwnerID }},
	"created":  {"Created", func(c model.ContentItem) interface{} { return c.CreatedAt.Format("2006-01-02") }},
	"rejection_reason": {"Rejection Reason", func(c model.ContentItem) interface{} {
		if c.RejectionReason == nil {
			return ""
		}
		return *c.RejectionReason
	}},
}

// normalizeColumns validates the requested optional column names against
// the known set and drops duplicates, keeping the caller's order.
func normalizeColumns(requested []string, known func(string) bool) ([]string, error) {
	out := make([]string, 0, len(requested))
	seen := make(map[string]bool, len(requested))
	for _, name := range requested {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		if !known(name) {
			return nil, fmt.Errorf("unknown export column %q: %w", name, ErrValidation)
		}
		seen[name] = true
		out = append(out, name)
	}
	return out, nil
}

// BuildProfileWorkbook renders profiles into an xlsx byte slice. Exported
// separately so handlers can stream a file without going through storage.
func BuildProfileWorkbook(items []model.Profile, columns []string) ([]byte, error) {
	selected, err := normalizeColumns(columns, func(name string) bool {
		_, ok := profileOptional[name]
		return ok
	})
	if err != nil {
		return nil, err
	}

	cols := make([]profileColumn, 0, len(profileMandatory)+len(selected))
	cols = append(cols, profileMandatory...)
	for _, name := range selected {
		cols = append(cols, profileOptional[name])
	}

	f := excelize.NewFile()
	defer f.Close()

	headers := make([]interface{}, len(cols))
	for i, col := range cols {
		headers[i] = col.header
	}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}

	for i, p := range items {
		row := make([]interface{}, len(cols))
		for j, col := range cols {
			row[j] = col.value(p)
		}
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func BuildContentWorkbook(items []model.ContentItem, columns []string) ([]byte, error) {
	selected, err := normalizeColumns(columns, func(name string) bool {
		_, ok := contentOptional[name]
		return ok
	})
	if err != nil {
		return nil, err
	}

	cols := make([]contentColumn, 0, len(contentMandatory)+len(selected))
	cols = append(cols, contentMandatory...)
	for _, name := range selected {
		cols = append(cols, contentOptional[name])
	}

	f := excelize.NewFile()
	defer f.Close()

	headers := make([]interface{}, len(cols))
	for i, col := range cols {
		headers[i] = col.header
	}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}

	for i, item := range items {
		row := make([]interface{}, len(cols))
		for j, col := range cols {
			row[j] = col.value(item)
		}
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func boolCell(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
