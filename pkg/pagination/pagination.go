// Package pagination parses page/per_page parameters and slices result sets.
package pagination

import (
	"net/http"
	"net/url"
	"strconv"
)

// Page size bounds.
const (
	DefaultPerPage = 24
	MaxPerPage     = 100
)

// Params holds pagination parameters extracted from query strings.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// DefaultParams returns the first page at the default size.
func DefaultParams() Params {
	return Params{Page: 1, PerPage: DefaultPerPage}
}

// Offset returns the index of the first item on the page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// FromRequest extracts pagination parameters from an HTTP request.
func FromRequest(r *http.Request) Params {
	return FromValues(r.URL.Query())
}

// FromValues extracts pagination parameters from query values. Invalid or
// out-of-range values fall back to the defaults.
func FromValues(v url.Values) Params {
	p := DefaultParams()

	if n, err := strconv.Atoi(v.Get("page")); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(v.Get("per_page")); err == nil && n > 0 && n <= MaxPerPage {
		p.PerPage = n
	}
	return p
}

// Result wraps one page of a result set.
type Result[T any] struct {
	Data       []T  `json:"data"`
	TotalCount int  `json:"total_count"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewResult wraps data, already limited to one page, with page metadata.
func NewResult[T any](data []T, totalCount int, params Params) Result[T] {
	totalPages := totalCount / params.PerPage
	if totalCount%params.PerPage > 0 {
		totalPages++
	}
	if data == nil {
		data = []T{}
	}

	return Result[T]{
		Data:       data,
		TotalCount: totalCount,
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}

// Paginate returns the page of items selected by params. A page past the end
// is empty.
func Paginate[T any](items []T, params Params) Result[T] {
	start := params.Offset()
	if start > len(items) {
		start = len(items)
	}
	end := start + params.PerPage
	if end > len(items) {
		end = len(items)
	}
	return NewResult(items[start:end], len(items), params)
}
