package dto

import (
	"time"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/model"
)

type NotificationResponse struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationListResponse struct {
	Items []NotificationResponse `json:"items"`
}

func NewNotificationListResponse(items []model.Notification) NotificationListResponse {
	out := NotificationListResponse{Items: make([]NotificationResponse, 0, len(items))}
	for _, n := range items {
		out.Items = append(out.Items, NotificationResponse{
			ID:        n.ID,
			Kind:      n.Kind,
			Message:   n.Message,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}
