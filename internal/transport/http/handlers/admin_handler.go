package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/enums"
	pgrepo "github.com/aadrika123/Mauryavansham-sub002/internal/repo/postgres"
	booksvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/bookings"
	modsvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/moderation"
	profsvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/profiles"
	reportsvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/reports"
	usersvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/users"
	"github.com/aadrika123/Mauryavansham-sub002/internal/transport/http/dto"
	httperrors "github.com/aadrika123/Mauryavansham-sub002/internal/transport/http/errors"
)

// AdminHandler groups the moderator-only surface: the review queue,
// content decisions, booking decisions, user management and exports.
// Routes mounting it sit behind the RequireRole middleware.
type AdminHandler struct {
	moderation *modsvc.Service
	bookings   *booksvc.Service
	users      *usersvc.Service
	profiles   *profsvc.Service
	reports    *reportsvc.Service
}

func NewAdminHandler(
	moderation *modsvc.Service,
	bookings *booksvc.Service,
	users *usersvc.Service,
	profiles *profsvc.Service,
	reports *reportsvc.Service,
) *AdminHandler {
	return &AdminHandler{
		moderation: moderation,
		bookings:   bookings,
		users:      users,
		profiles:   profiles,
		reports:    reports,
	}
}

// Queue lists pending items for review, oldest first. An optional ?kind=
// narrows it to one content kind.
func (h *AdminHandler) Queue(w http.ResponseWriter, r *http.Request) {
	if h.moderation == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	kind := enums.ContentKind(r.URL.Query().Get("kind"))
	if kind != "" && !kind.Valid() {
		writeBadRequest(w, "VALIDATION_ERROR", "unknown content kind")
		return
	}

	pageSize := queryInt(r, "page_size")
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	page := queryInt(r, "page")
	if page < 0 {
		page = 0
	}

	items, total, err := h.moderation.Queue(r.Context(), kind, pageSize, page*pageSize)
	if err != nil {
		handleModerationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewContentListResponse(items, page, pageSize, total))
}

func (h *AdminHandler) ApproveContent(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(r)
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	itemID, ok := urlParamInt64(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid item id")
		return
	}

	item, err := h.moderation.Approve(r.Context(), itemID, act)
	if err != nil {
		handleModerationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewContentResponse(item))
}

func (h *AdminHandler) RejectContent(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(r)
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	itemID, ok := urlParamInt64(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid item id")
		return
	}

	var req dto.RejectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", err.Error())
		return
	}

	item, err := h.moderation.Reject(r.Context(), itemID, act, req.Reason)
	if err != nil {
		handleModerationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewContentResponse(item))
}

func (h *AdminHandler) RemoveContent(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(r)
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	itemID, ok := urlParamInt64(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid item id")
		return
	}

	var req dto.RemoveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", err.Error())
		return
	}

	item, err := h.moderation.Remove(r.Context(), itemID, act, req.Reason)
	if err != nil {
		handleModerationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewContentResponse(item))
}

func (h *AdminHandler) ApproveBooking(w http.ResponseWriter, r *http.Request) {
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

	view, err := h.bookings.Approve(r.Context(), bookingID, act.Role)
	if err != nil {
		handleBookingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewBookingResponse(view))
}

func (h *AdminHandler) RejectBooking(w http.ResponseWriter, r *http.Request) {
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

	var req dto.RejectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", err.Error())
		return
	}

	view, err := h.bookings.Reject(r.Context(), bookingID, act.Role, req.Reason)
	if err != nil {
		handleBookingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewBookingResponse(view))
}

func (h *AdminHandler) ChangeUserRole(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(r)
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	userID, ok := urlParamInt64(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	var req dto.ChangeRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", err.Error())
		return
	}
	role, ok := enums.ParseRole(req.Role)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "unknown role")
		return
	}

	user, err := h.users.ChangeRole(r.Context(), userID, act.ID, act.Role, role)
	if err != nil {
		handleUserError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewUserResponse(user))
}

func (h *AdminHandler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(r)
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	userID, ok := urlParamInt64(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	var req dto.DeactivateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.users.Deactivate(r.Context(), userID, act.ID, act.Role, req.Reason); err != nil {
		handleUserError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *AdminHandler) ReactivateUser(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(r)
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	userID, ok := urlParamInt64(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	if err := h.users.Reactivate(r.Context(), userID, act.Role); err != nil {
		handleUserError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

// VerifyProfile grants or revokes the verification badge.
func (h *AdminHandler) VerifyProfile(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(r)
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	userID, ok := urlParamInt64(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	var req dto.VerifyProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.profiles.SetVerified(r.Context(), userID, act.Role, req.Verified); err != nil {
		handleProfileError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

// ExportProfiles builds a directory spreadsheet and returns the download
// link.
func (h *AdminHandler) ExportProfiles(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(r)
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.reports == nil {
		writeInternal(w, "REPORTS_SERVICE_UNAVAILABLE", "reports service is unavailable")
		return
	}

	q := r.URL.Query()
	export, err := h.reports.ExportProfiles(r.Context(), act.Role, pgrepo.ProfileFilter{
		Query:        q.Get("q"),
		Gender:       q.Get("gender"),
		City:         q.Get("city"),
		OnlyActive:   q.Get("include_inactive") != "true",
		OnlyVerified: q.Get("verified") == "true",
	}, exportColumns(q.Get("columns")))
	if err != nil {
		handleReportError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewExportResponse(export))
}

func (h *AdminHandler) ExportContent(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(r)
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.reports == nil {
		writeInternal(w, "REPORTS_SERVICE_UNAVAILABLE", "reports service is unavailable")
		return
	}

	q := r.URL.Query()
	kind := enums.ContentKind(q.Get("kind"))
	filter := pgrepo.ContentFilter{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		City:     q.Get("city"),
		Status:   enums.ModerationStatus(q.Get("status")),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		writeBadRequest(w, "VALIDATION_ERROR", "unknown status")
		return
	}

	export, err := h.reports.ExportContent(r.Context(), act.Role, kind, filter, exportColumns(q.Get("columns")))
	if err != nil {
		handleReportError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewExportResponse(export))
}

// exportColumns splits the optional ?columns= selection; the reports
// service validates the names.
func exportColumns(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func handleUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usersvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, usersvc.ErrForbidden):
		writeForbidden(w, "FORBIDDEN", "you are not allowed to manage this account")
	case errors.Is(err, usersvc.ErrNotFound):
		writeNotFound(w, "NOT_FOUND", "user not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

func handleReportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reportsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, reportsvc.ErrForbidden):
		writeForbidden(w, "FORBIDDEN", "exports are restricted to moderators")
	default:
		writeInternal(w, "INTERNAL_ERROR", "failed to build export")
	}
}
