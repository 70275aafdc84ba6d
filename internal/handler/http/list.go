package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gr1d99/shopping-list-api-sub000/internal/domain"
	"github.com/gr1d99/shopping-list-api-sub000/internal/service"
	apperrors "github.com/gr1d99/shopping-list-api-sub000/pkg/errors"
	"github.com/gr1d99/shopping-list-api-sub000/pkg/pagination"
)

// listResponse is the wire representation of a shopping list.
type listResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
	Created     string `json:"created"`
	Updated     string `json:"updated"`
}

// ListHandler exposes shopping list CRUD over HTTP.
type ListHandler struct {
	svc      *service.ListService
	loc      *time.Location
	maxLimit int
}

// NewListHandler creates a new shopping list handler. maxLimit caps the page
// size of collection endpoints.
func NewListHandler(svc *service.ListService, loc *time.Location, maxLimit int) *ListHandler {
	return &ListHandler{
		svc:      svc,
		loc:      loc,
		maxLimit: maxLimit,
	}
}

func (h *ListHandler) toListResponse(list *domain.ShoppingList) listResponse {
	return listResponse{
		ID:          list.ID,
		Name:        list.Name,
		Description: list.Description,
		IsActive:    list.IsActive,
		Created:     formatWireTime(list.CreatedAt, h.loc),
		Updated:     formatWireTime(list.UpdatedAt, h.loc),
	}
}

func (h *ListHandler) toListPage(page pagination.Page[*domain.ShoppingList]) pagination.Page[listResponse] {
	items := make([]listResponse, 0, len(page.Items))
	for _, list := range page.Items {
		items = append(items, h.toListResponse(list))
	}
	return pagination.Page[listResponse]{
		Items:       items,
		ItemsInPage: page.ItemsInPage,
		TotalCount:  page.TotalCount,
		CurrentPage: page.CurrentPage,
		Limit:       page.Limit,
		TotalPages:  page.TotalPages,
		HasNext:     page.HasNext,
		HasPrev:     page.HasPrev,
	}
}

// listIDFromRequest parses the {listID} URL parameter. A malformed ID is
// indistinguishable from a missing list.
func listIDFromRequest(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "listID"), 10, 64)
	if err != nil || id < 1 {
		return 0, apperrors.NotFound("shopping list does not exist")
	}
	return id, nil
}

type createListRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// Create handles POST /api/v1/shopping-lists.
func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createListRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user := userFrom(r.Context())

	list, err := h.svc.Create(r.Context(), user.ID, service.CreateListInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Shopping list created", h.toListResponse(list))
}

// List handles GET /api/v1/shopping-lists.
func (h *ListHandler) List(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	params, err := pagination.FromRequest(r, h.maxLimit)
	if err != nil {
		writeError(w, r, apperrors.ValidationFailed(err.Error()))
		return
	}

	page, err := h.svc.List(r.Context(), user.ID, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", h.toListPage(page))
}

// searchListsResponse carries an explicit not-found flag next to the page
// metadata so clients don't have to parse the message text.
type searchListsResponse struct {
	pagination.Page[listResponse]
	SearchNotFound bool `json:"search_not_found"`
}

// Search handles GET /api/v1/shopping-lists/search?q=<keyword>.
func (h *ListHandler) Search(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	params, err := pagination.FromRequest(r, h.maxLimit)
	if err != nil {
		writeError(w, r, apperrors.ValidationFailed(err.Error()))
		return
	}

	page, err := h.svc.Search(r.Context(), user.ID, r.URL.Query().Get("q"), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result := searchListsResponse{
		Page:           h.toListPage(page),
		SearchNotFound: page.TotalCount == 0,
	}

	message := ""
	if result.SearchNotFound {
		message = "no shopping lists matching the keyword were found"
	}
	writeSuccess(w, http.StatusOK, message, result)
}

// Get handles GET /api/v1/shopping-lists/{listID}.
func (h *ListHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	listID, err := listIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.svc.Get(r.Context(), user.ID, listID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", h.toListResponse(list))
}

type updateListRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// Update handles PUT /api/v1/shopping-lists/{listID}.
func (h *ListHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateListRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user := userFrom(r.Context())

	listID, err := listIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.svc.Update(r.Context(), user.ID, listID, service.UpdateListInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Shopping list updated", h.toListResponse(list))
}

// Delete handles DELETE /api/v1/shopping-lists/{listID}.
func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	listID, err := listIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), user.ID, listID); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Shopping list deleted", nil)
}

type deleteAllListsRequest struct {
	Password string `json:"password" validate:"required"`
}

// DeleteAll handles DELETE /api/v1/shopping-lists. The account password is
// re-checked before everything is removed.
func (h *ListHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	var req deleteAllListsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user := userFrom(r.Context())

	count, err := h.svc.DeleteAll(r.Context(), user.ID, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "All shopping lists deleted",
		map[string]int64{"deleted_count": count})
}
