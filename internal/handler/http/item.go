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

// itemResponse is the wire representation of a shopping item.
type itemResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	QuantityDescr string  `json:"quantity_description"`
	Bought        bool    `json:"bought"`
	Created       string  `json:"created"`
	Updated       string  `json:"updated"`
}

// ItemHandler exposes shopping item CRUD over HTTP.
type ItemHandler struct {
	svc      *service.ItemService
	loc      *time.Location
	maxLimit int
}

// NewItemHandler creates a new shopping item handler.
func NewItemHandler(svc *service.ItemService, loc *time.Location, maxLimit int) *ItemHandler {
	return &ItemHandler{
		svc:      svc,
		loc:      loc,
		maxLimit: maxLimit,
	}
}

func (h *ItemHandler) toItemResponse(item *domain.ShoppingItem) itemResponse {
	return itemResponse{
		ID:            item.ID,
		Name:          item.Name,
		Price:         item.Price,
		QuantityDescr: item.QuantityDescr,
		Bought:        item.Bought,
		Created:       formatWireTime(item.CreatedAt, h.loc),
		Updated:       formatWireTime(item.UpdatedAt, h.loc),
	}
}

func (h *ItemHandler) toItemPage(page pagination.Page[*domain.ShoppingItem]) pagination.Page[itemResponse] {
	items := make([]itemResponse, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, h.toItemResponse(item))
	}
	return pagination.Page[itemResponse]{
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

func itemIDFromRequest(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil || id < 1 {
		return 0, apperrors.NotFound("shopping item does not exist")
	}
	return id, nil
}

type createItemRequest struct {
	Name          string  `json:"name" validate:"required"`
	Price         float64 `json:"price" validate:"gte=0"`
	QuantityDescr string  `json:"quantity_description"`
}

// Create handles POST /api/v1/shopping-lists/{listID}/shopping-items.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
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

	item, err := h.svc.Create(r.Context(), user.ID, listID, service.CreateItemInput{
		Name:          req.Name,
		Price:         req.Price,
		QuantityDescr: req.QuantityDescr,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Shopping item created", h.toItemResponse(item))
}

// List handles GET /api/v1/shopping-lists/{listID}/shopping-items.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	listID, err := listIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	params, err := pagination.FromRequest(r, h.maxLimit)
	if err != nil {
		writeError(w, r, apperrors.ValidationFailed(err.Error()))
		return
	}

	page, err := h.svc.List(r.Context(), user.ID, listID, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", h.toItemPage(page))
}

// Get handles GET /api/v1/shopping-lists/{listID}/shopping-items/{itemID}.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	listID, err := listIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	itemID, err := itemIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.svc.Get(r.Context(), user.ID, listID, itemID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", h.toItemResponse(item))
}

type updateItemRequest struct {
	Name          *string  `json:"name"`
	Price         *float64 `json:"price"`
	QuantityDescr *string  `json:"quantity_description"`
	Bought        *bool    `json:"bought"`
}

// Update handles PUT /api/v1/shopping-lists/{listID}/shopping-items/{itemID}.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
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
	itemID, err := itemIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.svc.Update(r.Context(), user.ID, listID, itemID, service.UpdateItemInput{
		Name:          req.Name,
		Price:         req.Price,
		QuantityDescr: req.QuantityDescr,
		Bought:        req.Bought,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Shopping item updated", h.toItemResponse(item))
}

// Delete handles DELETE /api/v1/shopping-lists/{listID}/shopping-items/{itemID}.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	listID, err := listIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	itemID, err := itemIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), user.ID, listID, itemID); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Shopping item deleted", nil)
}
