package pagination

import (
	"math"
	"net/http"
	"strconv"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Params is a 1-based page request.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// DefaultParams returns the first page with DefaultPerPage items.
func DefaultParams() Params {
	return Params{Page: 1, PerPage: DefaultPerPage}
}

// FromRequest reads page and per_page from the query string. Values that do
// not parse or fall out of range keep their defaults.
func FromRequest(r *http.Request) Params {
	p := DefaultParams()
	q := r.URL.Query()

	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(q.Get("per_page")); err == nil && v > 0 && v <= MaxPerPage {
		p.PerPage = v
	}
	return p
}

// Offset is the index of the first item on the page. It saturates at
// math.MaxInt instead of overflowing for very large pages.
func (p Params) Offset() int {
	if p.Page <= 1 || p.PerPage <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PerPage {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PerPage
}

// Result is one page of an in-memory collection.
type Result[T any] struct {
	Data       []T  `json:"data"`
	TotalCount int  `json:"total_count"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Paginate cuts the requested page out of items. A page past the end yields
// an empty Data slice, never nil.
func Paginate[T any](items []T, p Params) Result[T] {
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.Page <= 0 {
		p.Page = 1
	}

	total := len(items)
	totalPages := (total + p.PerPage - 1) / p.PerPage

	start := min(p.Offset(), total)
	end := min(start+p.PerPage, total)

	data := make([]T, end-start)
	copy(data, items[start:end])

	return Result[T]{
		Data:       data,
		TotalCount: total,
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}
