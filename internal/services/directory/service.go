package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/enums"
	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/model"
	pgrepo "github.com/aadrika123/Mauryavansham-sub002/internal/repo/postgres"
)

var ErrValidation = errors.New("validation error")

type ProfileStore interface {
	Search(ctx context.Context, filter pgrepo.ProfileFilter, limit, offset int) ([]model.Profile, error)
	CountSearch(ctx context.Context, filter pgrepo.ProfileFilter) (int, error)
}

type ContentStore interface {
	List(ctx context.Context, filter pgrepo.ContentFilter, limit, offset int) ([]model.ContentItem, error)
	Count(ctx context.Context, filter pgrepo.ContentFilter) (int, error)
}

// PageRequest is the caller's paging intent before normalization. Page is
// 0-based; a zero page size picks the configured default.
type PageRequest struct {
	Page     int
	PageSize int
}

// PageInfo echoes the normalized paging parameters together with the
// total that matches the filter, not just the page slice.
type PageInfo struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

type ProfilePage struct {
	Items []model.Profile `json:"items"`
	PageInfo
}

type ContentPage struct {
	Items []model.ContentItem `json:"items"`
	PageInfo
}

// ProfileQuery is the public directory search: free text plus structured
// filters that all must match.
type ProfileQuery struct {
	Query         string
	Gender        string
	City          string
	MaritalStatus string
	OnlyVerified  bool
}

type ContentQuery struct {
	Query    string
	Category string
	City     string
}

type Service struct {
	profiles        ProfileStore
	content         ContentStore
	defaultPageSize int
	maxPageSize     int
}

func NewService(profiles ProfileStore, content ContentStore, defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize <= 0 {
		defaultPageSize = 20
	}
	if maxPageSize < defaultPageSize {
		maxPageSize = defaultPageSize
	}

	return &Service{
		profiles:        profiles,
		content:         content,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// SearchProfiles lists active member profiles. The free text query is a
// case-insensitive substring match over name, city, occupation and
// education; structured filters narrow the result further.
func (s *Service) SearchProfiles(ctx context.Context, q ProfileQuery, page PageRequest) (ProfilePage, error) {
	if s.profiles == nil {
		return ProfilePage{}, fmt.Errorf("profile store is nil")
	}

	info, offset, err := s.normalize(page)
	if err != nil {
		return ProfilePage{}, err
	}

	filter := pgrepo.ProfileFilter{
		Query:         strings.TrimSpace(q.Query),
		Gender:        strings.TrimSpace(q.Gender),
		City:          strings.TrimSpace(q.City),
		MaritalStatus: strings.TrimSpace(q.MaritalStatus),
		OnlyActive:    true,
		OnlyVerified:  q.OnlyVerified,
	}

	total, err := s.profiles.CountSearch(ctx, filter)
	if err != nil {
		return ProfilePage{}, fmt.Errorf("count profiles: %w", err)
	}

	items, err := s.profiles.Search(ctx, filter, info.PageSize, offset)
	if err != nil {
		return ProfilePage{}, fmt.Errorf("search profiles: %w", err)
	}
	if items == nil {
		items = []model.Profile{}
	}

	info.Total = total
	return ProfilePage{Items: items, PageInfo: info}, nil
}

// ListContent is the public listing for one content kind. Only approved
// items are visible here.
func (s *Service) ListContent(ctx context.Context, kind enums.ContentKind, q ContentQuery, page PageRequest) (ContentPage, error) {
	if s.content == nil {
		return ContentPage{}, fmt.Errorf("content store is nil")
	}
	if !kind.Valid() {
		return ContentPage{}, fmt.Errorf("unknown content kind %q: %w", kind, ErrValidation)
	}

	info, offset, err := s.normalize(page)
	if err != nil {
		return ContentPage{}, err
	}

	filter := pgrepo.ContentFilter{
		Kind:     kind,
		Status:   enums.ModerationStatusApproved,
		Query:    strings.TrimSpace(q.Query),
		Category: strings.TrimSpace(q.Category),
		City:     strings.TrimSpace(q.City),
	}

	total, err := s.content.Count(ctx, filter)
	if err != nil {
		return ContentPage{}, fmt.Errorf("count content: %w", err)
	}

	items, err := s.content.List(ctx, filter, info.PageSize, offset)
	if err != nil {
		return ContentPage{}, fmt.Errorf("list content: %w", err)
	}
	if items == nil {
		items = []model.ContentItem{}
	}

	info.Total = total
	return ContentPage{Items: items, PageInfo: info}, nil
}

func (s *Service) normalize(page PageRequest) (PageInfo, int, error) {
	if page.Page < 0 || page.PageSize < 0 {
		return PageInfo{}, 0, fmt.Errorf("page and page size must not be negative: %w", ErrValidation)
	}

	if page.PageSize == 0 {
		page.PageSize = s.defaultPageSize
	}
	if page.PageSize > s.maxPageSize {
		page.PageSize = s.maxPageSize
	}

	// Page 0 is the first page; the slice is [page*size, page*size+size).
	offset := page.Page * page.PageSize
	return PageInfo{Page: page.Page, PageSize: page.PageSize}, offset, nil
}
