// Package paging parses page/limit query parameters and computes offset
// pagination metadata for list endpoints.
package paging

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/edumanage/schoolsite/internal/app/system/apperr"
)

// Params is a validated page request. Page is 1-based.
type Params struct {
	Page  int
	Limit int
}

// Skip is the number of documents before the requested page.
func (p Params) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// Normalize checks page and limit and clamps limit to max. A page or limit
// below 1 is a validation error, as is a page whose skip would overflow int64.
func Normalize(page, limit, max int) (Params, error) {
	if page < 1 {
		return Params{}, apperr.Validation("page", apperr.ConstraintRange)
	}
	if limit < 1 {
		return Params{}, apperr.Validation("limit", apperr.ConstraintRange)
	}
	if limit > max {
		limit = max
	}
	if int64(page-1) > math.MaxInt64/int64(limit) {
		return Params{}, apperr.Validation("page", apperr.ConstraintRange)
	}
	return Params{Page: page, Limit: limit}, nil
}

// Pagination is the metadata returned next to a page of results.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// NewPagination computes Pages = ceil(total/limit).
func NewPagination(p Params, total int64) Pagination {
	var pages int64
	if p.Limit > 0 {
		pages = (total + int64(p.Limit) - 1) / int64(p.Limit)
	}
	return Pagination{Page: p.Page, Limit: p.Limit, Total: total, Pages: pages}
}

// IntParam reads an integer query parameter, returning def when it is absent.
// A present but non-numeric value is a validation error for that field.
func IntParam(r *http.Request, name string, def int) (int, error) {
	s := strings.TrimSpace(r.URL.Query().Get(name))
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperr.Validation(name, apperr.ConstraintFormat)
	}
	return n, nil
}

// BoolParam reads a boolean query parameter ("true", "false", "1", "0"),
// returning def when it is absent.
func BoolParam(r *http.Request, name string, def bool) (bool, error) {
	s := strings.TrimSpace(r.URL.Query().Get(name))
	if s == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, apperr.Validation(name, apperr.ConstraintFormat)
	}
	return b, nil
}
