package handlers

import (
	"errors"
	"net/http"
	"time"

	notifsvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/notifications"
	"github.com/aadrika123/Mauryavansham-sub002/internal/transport/http/dto"
	httperrors "github.com/aadrika123/Mauryavansham-sub002/internal/transport/http/errors"
)

type NotificationHandler struct {
	service *notifsvc.Service
}

func NewNotificationHandler(service *notifsvc.Service) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List returns the caller's notifications, optionally only those created
// after ?since=RFC3339.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(r)
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "NOTIFICATION_SERVICE_UNAVAILABLE", "notification service is unavailable")
		return
	}

	var since time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeBadRequest(w, "VALIDATION_ERROR", "since must be RFC3339")
			return
		}
		since = parsed
	}

	items, err := h.service.FetchSince(r.Context(), act.ID, since, queryInt(r, "limit"))
	if err != nil {
		if errors.Is(err, notifsvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", err.Error())
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to list notifications")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewNotificationListResponse(items))
}
