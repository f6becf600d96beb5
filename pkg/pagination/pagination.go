package pagination

import (
	"net/http"
	"strconv"
)

const (
	defaultLimit = 5
	maxLimit     = 50
)

// Params holds pagination and sort parameters extracted from query strings.
type Params struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Sort   string `json:"sort"`
	Offset int    `json:"-"`
}

// DefaultParams returns the defaults used when a request carries no
// pagination query parameters.
func DefaultParams() Params {
	return Params{
		Page:   1,
		Limit:  defaultLimit,
		Sort:   "desc",
		Offset: 0,
	}
}

// FromRequest extracts pagination parameters from an HTTP request.
// Out-of-range or malformed values fall back to the defaults.
func FromRequest(r *http.Request) Params {
	p := DefaultParams()

	if page := r.URL.Query().Get("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 0 {
			p.Page = v
		}
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if v, err := strconv.Atoi(limit); err == nil && v > 0 && v <= maxLimit {
			p.Limit = v
		}
	}

	if sort := r.URL.Query().Get("sort"); sort == "asc" || sort == "desc" {
		p.Sort = sort
	}

	p.Offset = (p.Page - 1) * p.Limit
	return p
}

// SortDirection returns the SQL sort keyword for the params. Only the
// two validated values ever reach query text.
func (p Params) SortDirection() string {
	if p.Sort == "asc" {
		return "ASC"
	}
	return "DESC"
}

// Result wraps a paginated response.
type Result[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NewResult creates a paginated result. TotalPages is never below 1 so
// an empty collection still reports a single (empty) page.
func NewResult[T any](data []T, total int, params Params) Result[T] {
	totalPages := total / params.Limit
	if total%params.Limit > 0 {
		totalPages++
	}
	if totalPages < 1 {
		totalPages = 1
	}
	if data == nil {
		data = []T{}
	}

	return Result[T]{
		Data:       data,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: totalPages,
	}
}
