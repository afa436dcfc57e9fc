package handlers

import (
	"errors"
	"net/http"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/enums"
	dirsvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/directory"
	modsvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/moderation"
	"github.com/aadrika123/Mauryavansham-sub002/internal/transport/http/dto"
	httperrors "github.com/aadrika123/Mauryavansham-sub002/internal/transport/http/errors"
)

// ContentHandler serves one content kind. The same handler type is
// mounted once per kind under /ads, /blogs, /events, /discussions and
// /businesses.
type ContentHandler struct {
	kind       enums.ContentKind
	moderation *modsvc.Service
	directory  *dirsvc.Service
}

func NewContentHandler(kind enums.ContentKind, moderation *modsvc.Service, directory *dirsvc.Service) *ContentHandler {
	return &ContentHandler{
		kind:       kind,
		moderation: moderation,
		directory:  directory,
	}
}

// List is the public, approved-only listing with search and paging.
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.directory == nil {
		writeInternal(w, "DIRECTORY_SERVICE_UNAVAILABLE", "directory service is unavailable")
		return
	}

	q := r.URL.Query()
	page, err := h.directory.ListContent(r.Context(), h.kind, dirsvc.ContentQuery{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		City:     q.Get("city"),
	}, dirsvc.PageRequest{
		Page:     queryInt(r, "page"),
		PageSize: queryInt(r, "page_size"),
	})
	if err != nil {
		if errors.Is(err, dirsvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", err.Error())
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to list content")
		return
	}

	httperrors.Write(w, http.StatusOK,
		dto.NewContentListResponse(page.Items, page.Page, page.PageSize, page.Total))
}

func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	item, err := h.moderation.Get(r.Context(), itemID, act)
	if err != nil {
		handleModerationError(w, err)
		return
	}
	if item.Kind != h.kind {
		writeNotFound(w, "NOT_FOUND", "item not found")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewContentResponse(item))
}

func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(r)
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	var req dto.ContentDraftRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", err.Error())
		return
	}

	item, err := h.moderation.CreateDraft(r.Context(), h.kind, act.ID, draftInput(req))
	if err != nil {
		handleModerationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.NewContentResponse(item))
}

func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req dto.ContentDraftRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", err.Error())
		return
	}

	item, err := h.moderation.UpdateDraft(r.Context(), itemID, act, draftInput(req))
	if err != nil {
		handleModerationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewContentResponse(item))
}

// Mine lists the caller's own items of this kind in every status.
func (h *ContentHandler) Mine(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(r)
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
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

	items, total, err := h.moderation.ListOwn(r.Context(), act.ID, h.kind, pageSize, page*pageSize)
	if err != nil {
		handleModerationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewContentListResponse(items, page, pageSize, total))
}

// Submit pushes a draft or rejected item into the moderation queue.
func (h *ContentHandler) Submit(w http.ResponseWriter, r *http.Request) {
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

	item, err := h.moderation.Submit(r.Context(), itemID, act)
	if err != nil {
		handleModerationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewContentResponse(item))
}

// Remove takes the item down permanently.
func (h *ContentHandler) Remove(w http.ResponseWriter, r *http.Request) {
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

func draftInput(req dto.ContentDraftRequest) modsvc.DraftInput {
	return modsvc.DraftInput{
		Title:        req.Title,
		Body:         req.Body,
		Category:     req.Category,
		City:         req.City,
		ImageURL:     req.ImageURL,
		ContactPhone: req.ContactPhone,
	}
}

func handleModerationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, modsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, modsvc.ErrForbidden):
		writeForbidden(w, "FORBIDDEN", "you are not allowed to perform this action")
	case errors.Is(err, modsvc.ErrNotFound):
		writeNotFound(w, "NOT_FOUND", "item not found")
	case errors.Is(err, modsvc.ErrInvalidTransition):
		writeConflict(w, "INVALID_TRANSITION", err.Error())
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
