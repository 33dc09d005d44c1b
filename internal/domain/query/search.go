package query

import (
	"github.com/magnuspl/navnetips/internal/domain/catalog"
	"github.com/magnuspl/navnetips/internal/ports"
)

// SearchAll searches every partition as one result set. Partitions are
// unioned in priority order (boy, girl, dog, cat) keeping each partition's
// order and filtered with SearchText. A name shared by several partitions
// is reported once, with the first record that matched; its Kind is the
// first partition holding the name, so a name that is both a dog and a cat
// name is always a dog hit.
func SearchAll(cat *catalog.Catalogue, term string) []ports.Hit {
	var union []ports.NameRecord
	for _, kind := range ports.AllKinds() {
		recs, _ := cat.ListByKind(kind)
		union = append(union, recs...)
	}

	matched := SearchText(union, term)
	hits := make([]ports.Hit, 0, len(matched))
	seen := make(map[string]bool, len(matched))

	for _, r := range matched {
		key := ports.Fold(r.Name)
		if seen[key] {
			continue
		}
		owner, ok := cat.Resolve(r.Name)
		if !ok {
			// Unreachable: r was sourced from a partition.
			continue
		}
		seen[key] = true
		hits = append(hits, ports.Hit{Record: r, Kind: owner.Kind})
	}
	return hits
}
