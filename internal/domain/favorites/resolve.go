package favorites

import (
	"github.com/magnuspl/navnetips/internal/domain/catalog"
	"github.com/magnuspl/navnetips/internal/ports"
)

// Liked is one favorite resolved against the catalogue. Record is nil when
// the name is no longer in the catalogue.
type Liked struct {
	Kind   ports.Kind        `json:"kind,omitempty"`
	Name   string            `json:"name"`
	Record *ports.NameRecord `json:"record,omitempty"`
}

// Resolve looks entries up in cat, keeping their order. Legacy entries
// take the first kind holding the name.
func Resolve(cat *catalog.Catalogue, entries []Entry) []Liked {
	out := make([]Liked, 0, len(entries))
	for _, e := range entries {
		l := Liked{Kind: e.Kind, Name: e.Name}
		if e.Legacy() {
			if hit, ok := cat.Resolve(e.Name); ok {
				l.Kind = hit.Kind
				l.Record = &hit.Record
			}
		} else if rec, ok := cat.Lookup(e.Kind, e.Name); ok {
			l.Record = &rec
		}
		out = append(out, l)
	}
	return out
}
