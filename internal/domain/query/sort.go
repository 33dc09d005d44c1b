package query

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/magnuspl/navnetips/internal/ports"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the field records are ordered by.
type SortKey string

const (
	SortAlphabetical SortKey = "alphabetical"
	SortLength       SortKey = "length"
	SortOrigin       SortKey = "origin"
)

// Direction flips the comparator's sign.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// collation is Norwegian Bokmål: Æ, Ø and Å sort after Z.
var collation = language.MustParse("nb")

// ParseSortKey validates a sort key coming from a UI code path.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortAlphabetical, SortLength, SortOrigin:
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown sort key %q", ports.ErrInvalidArgument, s)
}

// ParseDirection validates a sort direction.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Asc, Desc:
		return d, nil
	}
	return "", fmt.Errorf("%w: unknown sort direction %q", ports.ErrInvalidArgument, s)
}

// Sort returns a sorted copy of records. The sort is stable: ties keep
// input order in both directions, so for tie-free input Desc is exactly the
// reverse of Asc.
func Sort(records []ports.NameRecord, key SortKey, dir Direction) ([]ports.NameRecord, error) {
	if _, err := ParseSortKey(string(key)); err != nil {
		return nil, err
	}
	if _, err := ParseDirection(string(dir)); err != nil {
		return nil, err
	}

	sign := 1
	if dir == Desc {
		sign = -1
	}

	// Collators carry internal buffers; one per call keeps Sort safe for
	// concurrent use.
	col := collate.New(collation)

	var cmp func(a, b ports.NameRecord) int
	switch key {
	case SortAlphabetical:
		cmp = func(a, b ports.NameRecord) int { return col.CompareString(a.Name, b.Name) }
	case SortLength:
		cmp = func(a, b ports.NameRecord) int {
			return utf8.RuneCountInString(a.Name) - utf8.RuneCountInString(b.Name)
		}
	case SortOrigin:
		cmp = func(a, b ports.NameRecord) int { return col.CompareString(a.Origin, b.Origin) }
	}

	out := slices.Clone(records)
	if out == nil {
		out = []ports.NameRecord{}
	}
	slices.SortStableFunc(out, func(a, b ports.NameRecord) int {
		return sign * cmp(a, b)
	})
	return out, nil
}
