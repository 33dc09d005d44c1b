package favorites

import (
	"slices"

	"github.com/magnuspl/navnetips/internal/ports"
)

// set is an insertion-ordered favorites set. It is a value owned by one
// goroutine at a time; Store guards its current set with a mutex.
type set struct {
	entries []Entry
}

func newSet(entries []Entry) *set {
	return &set{entries: slices.Clone(entries)}
}

func (s *set) clone() *set { return newSet(s.entries) }

// has reports whether name is liked under kind, directly or through a
// legacy entry.
func (s *set) has(kind ports.Kind, name string) bool {
	want, legacy := keyOf(kind, name), keyOf("", name)
	for _, e := range s.entries {
		k := keyOf(e.Kind, e.Name)
		if k == want || k == legacy {
			return true
		}
	}
	return false
}

// toggle flips membership of (kind, name) and returns the new state.
// Removing also drops a matching legacy entry so the name stops showing
// as liked.
func (s *set) toggle(kind ports.Kind, name string) bool {
	if s.has(kind, name) {
		want, legacy := keyOf(kind, name), keyOf("", name)
		s.entries = slices.DeleteFunc(s.entries, func(e Entry) bool {
			k := keyOf(e.Kind, e.Name)
			return k == want || k == legacy
		})
		return false
	}
	s.entries = append(s.entries, Entry{Kind: kind, Name: name})
	return true
}

// put sets membership of (kind, name) to liked. It is idempotent.
func (s *set) put(kind ports.Kind, name string, liked bool) {
	if s.has(kind, name) != liked {
		s.toggle(kind, name)
	}
}

// flip is one toggle outcome that has not reached storage yet.
type flip struct {
	kind  ports.Kind
	name  string
	liked bool
}

// replay applies unsaved flips on top of a set read from storage.
func (s *set) replay(flips []flip) {
	for _, f := range flips {
		s.put(f.kind, f.name, f.liked)
	}
}

func (s *set) equal(o *set) bool {
	return slices.Equal(s.entries, o.entries)
}

func (s *set) list() []Entry {
	out := slices.Clone(s.entries)
	if out == nil {
		out = []Entry{}
	}
	return out
}
