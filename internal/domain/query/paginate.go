package query

import (
	"fmt"

	"github.com/magnuspl/navnetips/internal/ports"
)

// DefaultPageSize is the page size of the listing pages.
const DefaultPageSize = 12

// Page is one slice of a result sequence.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	Total      int `json:"total"`
}

// Paginate returns the 1-indexed page [(page-1)*size, page*size) clipped to
// bounds, with TotalPages = ceil(len(items)/size). A page below 1 or beyond
// TotalPages yields empty Items; clamping is the caller's job (see
// ClampPage). Only pageSize < 1 is an error.
func Paginate[T any](items []T, pageSize, page int) (Page[T], error) {
	if pageSize < 1 {
		return Page[T]{}, fmt.Errorf("%w: page size %d", ports.ErrInvalidArgument, pageSize)
	}

	total := len(items)
	p := Page[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
		Total:      total,
	}
	if page < 1 || page > p.TotalPages {
		return p, nil
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	p.Items = items[start:end:end]
	return p, nil
}

// ClampPage brings page into [1, max(totalPages, 1)].
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}
