package handlers

import (
	"errors"
	"net/http"

	booksvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/bookings"
	"github.com/aadrika123/Mauryavansham-sub002/internal/transport/http/dto"
	httperrors "github.com/aadrika123/Mauryavansham-sub002/internal/transport/http/errors"
)

type BookingHandler struct {
	service *booksvc.Service
}

func NewBookingHandler(service *booksvc.Service) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Placements(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "BOOKING_SERVICE_UNAVAILABLE", "booking service is unavailable")
		return
	}

	placements, err := h.service.ListPlacements(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list placements")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewPlacementListResponse(placements))
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(r)
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "BOOKING_SERVICE_UNAVAILABLE", "booking service is unavailable")
		return
	}

	var req dto.BookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", err.Error())
		return
	}
	from, to, err := dto.ParseDates(req.FromDate, req.ToDate)
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", err.Error())
		return
	}

	view, err := h.service.Create(r.Context(), act.ID, req.PlacementID, req.AdID, from, to)
	if err != nil {
		handleBookingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.NewBookingResponse(view))
}

func (h *BookingHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(r)
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	bookingID, ok := urlParamInt64(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid booking id")
		return
	}

	var req dto.RescheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", err.Error())
		return
	}
	from, to, err := dto.ParseDates(req.FromDate, req.ToDate)
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", err.Error())
		return
	}

	view, err := h.service.Reschedule(r.Context(), bookingID, act.ID, act.Role, from, to)
	if err != nil {
		handleBookingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewBookingResponse(view))
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(r)
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	bookingID, ok := urlParamInt64(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid booking id")
		return
	}

	view, err := h.service.Cancel(r.Context(), bookingID, act.ID, act.Role)
	if err != nil {
		handleBookingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewBookingResponse(view))
}

// Mine lists the caller's bookings with derived display state.
func (h *BookingHandler) Mine(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(r)
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	views, err := h.service.ListByOwner(r.Context(), act.ID)
	if err != nil {
		handleBookingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewBookingListResponse(views))
}

// ByPlacement shows the calendar of one placement.
func (h *BookingHandler) ByPlacement(w http.ResponseWriter, r *http.Request) {
	placementID, ok := urlParamInt64(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid placement id")
		return
	}

	views, err := h.service.ListByPlacement(r.Context(), placementID)
	if err != nil {
		handleBookingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewBookingListResponse(views))
}

func handleBookingError(w http.ResponseWriter, err error) {
	var conflict *booksvc.ConflictError
	switch {
	case errors.As(err, &conflict):
		httperrors.Write(w, http.StatusConflict, httperrors.ConflictError{
			Code:      "BOOKING_CONFLICT",
			Message:   conflict.Error(),
			BookingID: conflict.BookingID,
			FromDate:  conflict.FromDate.Format("2006-01-02"),
			ToDate:    conflict.ToDate.Format("2006-01-02"),
		})
	case errors.Is(err, booksvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, booksvc.ErrForbidden):
		writeForbidden(w, "FORBIDDEN", "you are not allowed to modify this booking")
	case errors.Is(err, booksvc.ErrNotFound):
		writeNotFound(w, "NOT_FOUND", "booking not found")
	case errors.Is(err, booksvc.ErrPlacementNotFound):
		writeNotFound(w, "PLACEMENT_NOT_FOUND", "placement not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
