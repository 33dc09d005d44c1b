package query

import (
	"github.com/magnuspl/navnetips/internal/domain/catalog"
	"github.com/magnuspl/navnetips/internal/ports"
)

// Query bundles the listing parameters for one partition. Zero values mean
// "not set": empty Search, Tag, Letter and Origin skip their filter, an
// empty SortKey or Direction means alphabetical ascending, Page 0 means the
// first page and PageSize 0 means DefaultPageSize.
type Query struct {
	Kind      ports.Kind
	Search    string
	Tag       string
	Letter    string
	Origin    string
	SortKey   SortKey
	Direction Direction
	Page      int
	PageSize  int
}

// Execute runs the pipeline search -> tag/letter/origin -> sort -> paginate.
// The engine holds no state between calls: TotalPages is recomputed every
// time and resetting to page 1 when a filter changes is the caller's rule.
func Execute(cat *catalog.Catalogue, q Query) (Page[ports.NameRecord], error) {
	recs, err := cat.ListByKind(q.Kind)
	if err != nil {
		return Page[ports.NameRecord]{}, err
	}

	key, dir := q.SortKey, q.Direction
	if key == "" {
		key = SortAlphabetical
	}
	if dir == "" {
		dir = Asc
	}
	size := q.PageSize
	if size == 0 {
		size = DefaultPageSize
	}
	page := q.Page
	if page == 0 {
		page = 1
	}

	recs = SearchText(recs, q.Search)
	if q.Tag != "" {
		recs = FilterByTag(recs, q.Tag)
	}
	if q.Letter != "" {
		recs = FilterByPrefix(recs, q.Letter)
	}
	if q.Origin != "" {
		recs = FilterByOrigin(recs, q.Origin)
	}

	sorted, err := Sort(recs, key, dir)
	if err != nil {
		return Page[ports.NameRecord]{}, err
	}
	return Paginate(sorted, size, page)
}
