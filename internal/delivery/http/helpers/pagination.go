package helpers

import (
	"net/http"
	"net/url"
	"strconv"

	"collegeevents/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = domain.MaxPageSize
)

// ParsePagination reads ?page= and ?page_size=. Missing or non-positive values use the
// defaults; page_size is capped at MaxPageSize.
func ParsePagination(r *http.Request) domain.PaginationParams {
	q := r.URL.Query()
	params := domain.PaginationParams{
		Page:     positiveQueryInt(q, "page", DefaultPage),
		PageSize: positiveQueryInt(q, "page_size", DefaultPageSize),
	}
	params.PageSize = params.Limit()
	return params
}

func positiveQueryInt(q url.Values, key string, fallback int) int {
	v, err := strconv.Atoi(q.Get(key))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

// PaginationMeta describes where a page sits in the full result set.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasMore    bool `json:"has_more"`
}

// Page is the data payload of a paginated list response.
type Page[T any] struct {
	Items      []T            `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

// NewPage bundles one page of items with its pagination metadata. A nil slice is
// rendered as an empty list.
func NewPage[T any](items []T, params domain.PaginationParams, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	size := params.Limit()
	pages := (total + size - 1) / size
	return Page[T]{
		Items: items,
		Pagination: PaginationMeta{
			Page:       params.Page,
			PageSize:   size,
			Total:      total,
			TotalPages: pages,
			HasMore:    params.Page < pages,
		},
	}
}
