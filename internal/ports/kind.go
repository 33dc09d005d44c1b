package ports

import (
	"fmt"
	"strings"
)

// Kind identifies one of the fixed name partitions.
type Kind string

const (
	KindBoy  Kind = "boy"
	KindGirl Kind = "girl"
	KindDog  Kind = "dog"
	KindCat  Kind = "cat"
)

// kindInfo holds the Norwegian presentation data for a kind.
type kindInfo struct {
	slug  string
	label string
}

var kindTable = map[Kind]kindInfo{
	KindBoy:  {slug: "guttenavn", label: "Guttenavn"},
	KindGirl: {slug: "jentenavn", label: "Jentenavn"},
	KindDog:  {slug: "hundenavn", label: "Hundenavn"},
	KindCat:  {slug: "kattenavn", label: "Kattenavn"},
}

// AllKinds returns every kind in lookup priority order: boy, girl, dog, cat.
// Cross-collection resolution depends on this order.
func AllKinds() []Kind {
	return []Kind{KindBoy, KindGirl, KindDog, KindCat}
}

// ParseKind accepts the enum value ("dog") or the Norwegian slug
// ("hundenavn"), case-insensitively.
func ParseKind(s string) (Kind, error) {
	key := Fold(strings.TrimSpace(s))
	for k, info := range kindTable {
		if key == string(k) || key == info.slug {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidArgument, s)
}

// Valid reports whether k is one of the four partitions.
func (k Kind) Valid() bool {
	_, ok := kindTable[k]
	return ok
}

// Slug returns the URL segment used by the site ("guttenavn", ...).
func (k Kind) Slug() string { return kindTable[k].slug }

// Label returns the Norwegian display label.
func (k Kind) Label() string { return kindTable[k].label }

func (k Kind) String() string { return string(k) }
