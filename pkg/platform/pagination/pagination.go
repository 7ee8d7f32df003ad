// Package pagination parses list-endpoint paging parameters and builds the
// standard paginated response envelope.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Params is a validated page/per-page pair. Values outside the allowed range
// silently clamp to defaults so list endpoints never fail on paging input.
type Params struct {
	Page    int
	PerPage int
}

// FromRequest reads page and per_page query parameters, applying defaults and
// the per-page cap.
func FromRequest(r *http.Request) Params {
	p := Params{Page: DefaultPage, PerPage: DefaultPerPage}

	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			p.Page = v
		}
	}
	if raw := r.URL.Query().Get("per_page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			p.PerPage = min(v, MaxPerPage)
		}
	}
	return p
}

// Offset returns the SQL offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Limit returns the SQL limit for the current page.
func (p Params) Limit() int {
	return p.PerPage
}

// Envelope is the wire shape for paginated list responses.
type Envelope struct {
	Data       any `json:"data"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewEnvelope wraps a data page with its paging metadata.
func NewEnvelope(data any, p Params, total int) Envelope {
	totalPages := 0
	if total > 0 {
		totalPages = (total + p.PerPage - 1) / p.PerPage
	}
	return Envelope{
		Data:       data,
		Page:       p.Page,
		PerPage:    p.PerPage,
		Total:      total,
		TotalPages: totalPages,
	}
}
