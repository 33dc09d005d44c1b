// Package query is the catalogue query engine: stateless filters, sort and
// pagination over one partition, and the cross-collection search.
//
// Every function is total over well-typed input. No match yields an empty
// slice; only malformed internal parameters (unknown sort key or direction,
// page size below one) return ports.ErrInvalidArgument.
package query

import (
	"strings"

	"github.com/magnuspl/navnetips/internal/ports"
)

// All is the sentinel that disables the tag and origin filters.
const All = "all"

// DefaultLetter is used by FilterByPrefix when no letter is given.
const DefaultLetter = "a"

// FilterByPrefix keeps records whose name starts with letter,
// case-insensitively. An empty letter means DefaultLetter.
func FilterByPrefix(records []ports.NameRecord, letter string) []ports.NameRecord {
	if letter == "" {
		letter = DefaultLetter
	}
	prefix := ports.Fold(letter)
	return keep(records, func(r ports.NameRecord) bool {
		return strings.HasPrefix(ports.Fold(r.Name), prefix)
	})
}

// FilterByTag keeps records carrying tag. Tag matching is exact; All
// returns the input unchanged.
func FilterByTag(records []ports.NameRecord, tag string) []ports.NameRecord {
	if tag == All {
		return records
	}
	return keep(records, func(r ports.NameRecord) bool {
		return r.HasCategory(tag)
	})
}

// FilterByAnyTag keeps records carrying at least one of tags (logical OR).
func FilterByAnyTag(records []ports.NameRecord, tags []string) []ports.NameRecord {
	return keep(records, func(r ports.NameRecord) bool {
		for _, t := range tags {
			if r.HasCategory(t) {
				return true
			}
		}
		return false
	})
}

// FilterByOrigin keeps records whose origin equals origin exactly; All
// returns the input unchanged.
func FilterByOrigin(records []ports.NameRecord, origin string) []ports.NameRecord {
	if origin == All {
		return records
	}
	return keep(records, func(r ports.NameRecord) bool {
		return r.Origin == origin
	})
}

// SearchText keeps records where term is a case-insensitive substring of
// the name, meaning or origin. An empty term matches everything.
func SearchText(records []ports.NameRecord, term string) []ports.NameRecord {
	if term == "" {
		return records
	}
	needle := ports.Fold(term)
	return keep(records, func(r ports.NameRecord) bool {
		return matches(r, needle)
	})
}

// matches tests a folded needle against the searchable fields.
func matches(r ports.NameRecord, needle string) bool {
	return strings.Contains(ports.Fold(r.Name), needle) ||
		strings.Contains(ports.Fold(r.Meaning), needle) ||
		strings.Contains(ports.Fold(r.Origin), needle)
}

// keep returns a new slice with the records satisfying pred.
// The result is never nil so that it encodes as [] in JSON.
func keep(records []ports.NameRecord, pred func(ports.NameRecord) bool) []ports.NameRecord {
	out := make([]ports.NameRecord, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}
