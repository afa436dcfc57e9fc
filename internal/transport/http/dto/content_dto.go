package dto

import (
	"time"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/model"
)

type ContentDraftRequest struct {
	Title        string `json:"title" validate:"required,max=200"`
	Body         string `json:"body" validate:"max=20000"`
	Category     string `json:"category" validate:"max=100"`
	City         string `json:"city" validate:"max=100"`
	ImageURL     string `json:"image_url" validate:"omitempty,url,max=500"`
	ContactPhone string `json:"contact_phone" validate:"max=20"`
}

type RejectRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type RemoveRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type ContentResponse struct {
	ID              int64      `json:"id"`
	Kind            string     `json:"kind"`
	OwnerID         int64      `json:"owner_id"`
	Title           string     `json:"title"`
	Body            string     `json:"body,omitempty"`
	Category        string     `json:"category,omitempty"`
	City            string     `json:"city,omitempty"`
	ImageURL        string     `json:"image_url,omitempty"`
	ContactPhone    string     `json:"contact_phone,omitempty"`
	Status          string     `json:"status"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	ApprovedBy      *int64     `json:"approved_by,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type ContentListResponse struct {
	Items    []ContentResponse `json:"items"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Total    int               `json:"total"`
}

func NewContentResponse(item model.ContentItem) ContentResponse {
	return ContentResponse{
		ID:              item.ID,
		Kind:            string(item.Kind),
		OwnerID:         item.OwnerID,
		Title:           item.Title,
		Body:            item.Body,
		Category:        item.Category,
		City:            item.City,
		ImageURL:        item.ImageURL,
		ContactPhone:    item.ContactPhone,
		Status:          string(item.Status),
		ApprovedAt:      item.ApprovedAt,
		ApprovedBy:      item.ApprovedBy,
		RejectionReason: item.RejectionReason,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

func NewContentListResponse(items []model.ContentItem, page, pageSize, total int) ContentListResponse {
	out := ContentListResponse{
		Items:    make([]ContentResponse, 0, len(items)),
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}
	for _, item := range items {
		out.Items = append(out.Items, NewContentResponse(item))
	}
	return out
}
