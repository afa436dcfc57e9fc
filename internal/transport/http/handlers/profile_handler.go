package handlers

import (
	"errors"
	"net/http"
	"time"

	dirsvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/directory"
	profsvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/profiles"
	"github.com/aadrika123/Mauryavansham-sub002/internal/transport/http/dto"
	httperrors "github.com/aadrika123/Mauryavansham-sub002/internal/transport/http/errors"
)

type ProfileHandler struct {
	profiles  *profsvc.Service
	directory *dirsvc.Service
}

func NewProfileHandler(profiles *profsvc.Service, directory *dirsvc.Service) *ProfileHandler {
	return &ProfileHandler{
		profiles:  profiles,
		directory: directory,
	}
}

// Search is the public member directory with free text and structured
// filters.
func (h *ProfileHandler) Search(w http.ResponseWriter, r *http.Request) {
	if h.directory == nil {
		writeInternal(w, "DIRECTORY_SERVICE_UNAVAILABLE", "directory service is unavailable")
		return
	}

	q := r.URL.Query()
	page, err := h.directory.SearchProfiles(r.Context(), dirsvc.ProfileQuery{
		Query:         q.Get("q"),
		Gender:        q.Get("gender"),
		City:          q.Get("city"),
		MaritalStatus: q.Get("marital_status"),
		OnlyVerified:  q.Get("verified") == "true",
	}, dirsvc.PageRequest{
		Page:     queryInt(r, "page"),
		PageSize: queryInt(r, "page_size"),
	})
	if err != nil {
		if errors.Is(err, dirsvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", err.Error())
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to search profiles")
		return
	}

	httperrors.Write(w, http.StatusOK,
		dto.NewProfileListResponse(page.Items, page.Page, page.PageSize, page.Total))
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlParamInt64(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	profile, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		handleProfileError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewProfileResponse(profile))
}

func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(r)
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	profile, err := h.profiles.Get(r.Context(), act.ID)
	if err != nil {
		handleProfileError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewProfileResponse(profile))
}

// Save creates or updates the caller's own profile.
func (h *ProfileHandler) Save(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(r)
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	var req dto.ProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", err.Error())
		return
	}

	var birthdate *time.Time
	if req.Birthdate != "" {
		parsed, err := time.Parse("2006-01-02", req.Birthdate)
		if err != nil {
			writeBadRequest(w, "VALIDATION_ERROR", "birthdate must be YYYY-MM-DD")
			return
		}
		birthdate = &parsed
	}

	profile, err := h.profiles.Save(r.Context(), act.ID, profsvc.UpdateInput{
		Name:          req.Name,
		Gender:        req.Gender,
		Birthdate:     birthdate,
		City:          req.City,
		Occupation:    req.Occupation,
		Education:     req.Education,
		MaritalStatus: req.MaritalStatus,
		About:         req.About,
		PhotoURL:      req.PhotoURL,
	})
	if err != nil {
		handleProfileError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewProfileResponse(profile))
}

func (h *ProfileHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
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

	var req dto.DeactivateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.profiles.Deactivate(r.Context(), userID, act.ID, act.Role, req.Reason, req.Review); err != nil {
		handleProfileError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *ProfileHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
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

	if err := h.profiles.Reactivate(r.Context(), userID, act.ID, act.Role); err != nil {
		handleProfileError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func handleProfileError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, profsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, profsvc.ErrForbidden):
		writeForbidden(w, "FORBIDDEN", "you may not touch this profile")
	case errors.Is(err, profsvc.ErrNotFound):
		writeNotFound(w, "NOT_FOUND", "profile not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
