// Package catalog holds the immutable name catalogue: four partitions
// (boy, girl, dog, cat) loaded once at startup, plus the tag vocabulary
// and the popularity lists. Nothing in the package mutates a Catalogue
// after construction, so a *Catalogue is safe for concurrent readers.
package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/magnuspl/navnetips/internal/ports"
	"gopkg.in/yaml.v3"
)

// Source is the YAML schema of a catalogue file. Every section is optional;
// when several files are loaded their sections are merged in sorted
// filename order, partitions by appending.
type Source struct {
	Partitions map[ports.Kind][]ports.NameRecord `yaml:"partitions"`
	Tags       []ports.Tag                       `yaml:"tags"`
	Popular    map[ports.Kind][]ports.RankedName `yaml:"popular"`
}

// Catalogue maps each kind to an ordered sequence of records.
type Catalogue struct {
	partitions map[ports.Kind][]ports.NameRecord

	// index maps kind -> folded name -> position in the partition.
	// Built once in New; lookups are O(1) instead of a partition scan.
	index map[ports.Kind]map[string]int

	tags    []ports.Tag
	popular map[ports.Kind][]ports.RankedName
}

// Load reads all YAML files from an fs.FS directory and builds the catalogue.
// Files are loaded in sorted order for deterministic insertion order.
// Returns an error if any file fails to parse or validation fails.
func Load(fsys fs.FS, dir string) (*Catalogue, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read catalogue dir %q: %w", dir, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	merged := Source{
		Partitions: make(map[ports.Kind][]ports.NameRecord),
		Popular:    make(map[ports.Kind][]ports.RankedName),
	}
	loaded := 0

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !(strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")) {
			continue
		}

		data, err := fs.ReadFile(fsys, dir+"/"+name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		var src Source
		if err := yaml.Unmarshal(data, &src); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		merged.merge(src)
		loaded++
	}

	if loaded == 0 {
		return nil, fmt.Errorf("catalogue is empty: no YAML files found in %q", dir)
	}
	return New(merged)
}

// LoadFile builds a catalogue from a single YAML file on disk.
func LoadFile(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalogue %s: %w", path, err)
	}
	var src Source
	if err := yaml.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return New(src)
}

func (s *Source) merge(other Source) {
	for k, recs := range other.Partitions {
		s.Partitions[k] = append(s.Partitions[k], recs...)
	}
	for k, ranked := range other.Popular {
		s.Popular[k] = append(s.Popular[k], ranked...)
	}
	s.Tags = append(s.Tags, other.Tags...)
}

// New validates src and builds the catalogue. All four partitions exist
// afterwards, possibly empty. Records are copied so later changes to src
// cannot leak into the catalogue.
func New(src Source) (*Catalogue, error) {
	c := &Catalogue{
		partitions: make(map[ports.Kind][]ports.NameRecord, 4),
		index:      make(map[ports.Kind]map[string]int, 4),
		popular:    make(map[ports.Kind][]ports.RankedName),
	}

	for kind := range src.Partitions {
		if !kind.Valid() {
			return nil, fmt.Errorf("partition %q: unknown kind", kind)
		}
	}
	for kind := range src.Popular {
		if !kind.Valid() {
			return nil, fmt.Errorf("popular list %q: unknown kind", kind)
		}
	}

	for _, kind := range ports.AllKinds() {
		recs := src.Partitions[kind]
		part := make([]ports.NameRecord, 0, len(recs))
		idx := make(map[string]int, len(recs))

		for i, r := range recs {
			name := strings.TrimSpace(r.Name)
			if name == "" {
				return nil, fmt.Errorf("%s record %d: empty name", kind, i)
			}
			key := ports.Fold(name)
			if prev, dup := idx[key]; dup {
				return nil, fmt.Errorf("%s: duplicate name %q (records %d and %d)", kind, name, prev, i)
			}
			idx[key] = len(part)
			part = append(part, ports.NameRecord{
				Name:       name,
				Meaning:    r.Meaning,
				Origin:     r.Origin,
				Categories: append([]string(nil), r.Categories...),
			})
		}

		c.partitions[kind] = part
		c.index[kind] = idx

		if ranked := src.Popular[kind]; len(ranked) > 0 {
			list := append([]ports.RankedName(nil), ranked...)
			sort.SliceStable(list, func(i, j int) bool { return list[i].Rank < list[j].Rank })
			c.popular[kind] = list
		}
	}

	seen := make(map[string]bool, len(src.Tags))
	for _, t := range src.Tags {
		if t.ID == "" {
			return nil, fmt.Errorf("tag with empty id")
		}
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		c.tags = append(c.tags, t)
	}

	return c, nil
}

// ListByKind returns the full partition in insertion order. The returned
// slice is a copy; the records' Categories slices are shared and must be
// treated as read-only.
func (c *Catalogue) ListByKind(kind ports.Kind) ([]ports.NameRecord, error) {
	part, ok := c.partitions[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown kind %q", ports.ErrInvalidArgument, kind)
	}
	out := make([]ports.NameRecord, len(part))
	copy(out, part)
	return out, nil
}

// Len returns the number of records in a partition (0 for unknown kinds).
func (c *Catalogue) Len(kind ports.Kind) int {
	return len(c.partitions[kind])
}

// Lookup finds a record by name inside one partition, case-insensitively.
// A miss is reported with ok == false, never as an error.
func (c *Catalogue) Lookup(kind ports.Kind, name string) (ports.NameRecord, bool) {
	i, ok := c.index[kind][ports.Fold(strings.TrimSpace(name))]
	if !ok {
		return ports.NameRecord{}, false
	}
	return c.partitions[kind][i], true
}

// Resolve finds name in the first partition that holds it, walking kinds in
// priority order (boy, girl, dog, cat). A name present as both a dog and a
// cat name always resolves to dog.
func (c *Catalogue) Resolve(name string) (ports.Hit, bool) {
	for _, kind := range ports.AllKinds() {
		if rec, ok := c.Lookup(kind, name); ok {
			return ports.Hit{Record: rec, Kind: kind}, true
		}
	}
	return ports.Hit{}, false
}

// Tags returns the tag vocabulary in source order.
func (c *Catalogue) Tags() []ports.Tag {
	return append([]ports.Tag(nil), c.tags...)
}

// Popular returns the ranked popularity list for a kind, ordered by rank.
// Kinds without a list return nil.
func (c *Catalogue) Popular(kind ports.Kind) []ports.RankedName {
	return append([]ports.RankedName(nil), c.popular[kind]...)
}
