package pagination

import (
	"errors"
	"net/http"
	"strconv"
)

// Params holds pagination parameters extracted from query strings.
type Params struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"-"`
}

// FromRequest extracts pagination parameters from an HTTP request. Explicitly
// negative page or limit values are rejected; missing, non-numeric, or zero
// values fall back to page 1 and the supplied default limit. The limit is
// capped at the default, which is the configured maximum page size.
func FromRequest(r *http.Request, defaultLimit int) (Params, error) {
	p := Params{Page: 1, Limit: defaultLimit}

	if page := r.URL.Query().Get("page"); page != "" {
		v, err := strconv.Atoi(page)
		if err == nil && v < 0 {
			return Params{}, errors.New("page must not be negative")
		}
		if err == nil && v > 0 {
			p.Page = v
		}
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		v, err := strconv.Atoi(limit)
		if err == nil && v < 0 {
			return Params{}, errors.New("limit must not be negative")
		}
		if err == nil && v > 0 && v <= defaultLimit {
			p.Limit = v
		}
	}

	p.Offset = (p.Page - 1) * p.Limit
	return p, nil
}

// Page wraps one page of results with navigation metadata.
type Page[T any] struct {
	Items       []T  `json:"items"`
	ItemsInPage int  `json:"items_in_page"`
	TotalCount  int  `json:"total_count"`
	CurrentPage int  `json:"current_page"`
	Limit       int  `json:"limit"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrev     bool `json:"has_prev"`
}

// NewPage creates a page envelope from the items of the current page and
// the total count of the full result set.
func NewPage[T any](items []T, totalCount int, params Params) Page[T] {
	totalPages := totalCount / params.Limit
	if totalCount%params.Limit > 0 {
		totalPages++
	}

	if items == nil {
		items = []T{}
	}

	return Page[T]{
		Items:       items,
		ItemsInPage: len(items),
		TotalCount:  totalCount,
		CurrentPage: params.Page,
		Limit:       params.Limit,
		TotalPages:  totalPages,
		HasNext:     params.Page < totalPages,
		HasPrev:     params.Page > 1,
	}
}
