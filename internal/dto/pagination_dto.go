package dto

import (
	"math"
	"strconv"
	"strings"
)

// Pagination defaults applied when the query omits or garbles page parameters.
const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100

	// MaxPage bounds the page number so the row offset cannot overflow.
	MaxPage = 1_000_000
)

// PageRequest is a normalised page/perPage pair.
type PageRequest struct {
	Page    int
	PerPage int
}

// ParsePageRequest converts raw query values into a PageRequest. Missing,
// non-numeric or non-positive values silently fall back to the defaults.
func ParsePageRequest(rawPage, rawPerPage string) PageRequest {
	return PageRequest{
		Page:    atoiDefault(rawPage, DefaultPage),
		PerPage: atoiDefault(rawPerPage, DefaultPerPage),
	}.Normalize()
}

// Normalize clamps the request to valid bounds.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset is the number of records to skip.
func (p PageRequest) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PerPage
}

// Limit is the maximum number of records in the page.
func (p PageRequest) Limit() int {
	return p.Normalize().PerPage
}

// PaginationMeta captures pagination metadata for list responses.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

// NewPaginationMeta builds the metadata for a page of a result set with total items.
func NewPaginationMeta(page PageRequest, total int64) PaginationMeta {
	page = page.Normalize()
	meta := PaginationMeta{
		Page:       page.Page,
		PerPage:    page.PerPage,
		TotalItems: total,
	}
	if total > 0 {
		meta.TotalPages = int(math.Ceil(float64(total) / float64(page.PerPage)))
	}
	return meta
}

func atoiDefault(value string, fallback int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 1 {
		return fallback
	}
	return parsed
}
