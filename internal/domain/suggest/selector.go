// Package suggest implements the one-at-a-time suggestion flow: a
// tag-filtered subset of one partition, shuffled once, walked with a cursor.
//
// Lifecycle:
//
//	Idle --Start--> Active | Empty
//	Active --Next (at last record)--> Exhausted
//	Exhausted --Reshuffle--> Active
//	any --Configure with a different filter--> Idle
//
// Thread safety: NOT safe for concurrent use. The caller must serialize access.
package suggest

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/magnuspl/navnetips/internal/domain/catalog"
	"github.com/magnuspl/navnetips/internal/domain/query"
	"github.com/magnuspl/navnetips/internal/ports"
)

// State is the selector's lifecycle state.
type State int

const (
	// StateIdle means no shuffle is in progress for the current filter.
	StateIdle State = iota
	// StateEmpty means the filter matched no records.
	StateEmpty
	// StateActive means there are records left to present.
	StateActive
	// StateExhausted means every record of the shuffle has been presented.
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEmpty:
		return "empty"
	case StateActive:
		return "active"
	case StateExhausted:
		return "exhausted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Selector holds one suggestion session.
type Selector struct {
	cat *catalog.Catalogue
	rng *rand.Rand

	kind ports.Kind
	tags []string

	state  State
	order  []ports.NameRecord
	cursor int // index of the current record; -1 before the first Next
}

// New creates an idle selector over cat. A nil rng is replaced by a
// randomly seeded PCG source; pass a seeded one for reproducible order.
func New(cat *catalog.Catalogue, rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Selector{cat: cat, rng: rng, cursor: -1}
}

// Configure sets the filter. If kind or tags differ from the current
// filter, any shuffle in progress is dropped and the selector goes Idle:
// a stale shuffle never keeps iterating after its inputs change.
func (s *Selector) Configure(kind ports.Kind, tags []string) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ports.ErrInvalidArgument, kind)
	}
	if len(tags) == 0 {
		return fmt.Errorf("%w: at least one tag is required", ports.ErrInvalidArgument)
	}

	norm := normalizeTags(tags)
	if kind == s.kind && slices.Equal(norm, s.tags) {
		return nil
	}
	s.kind = kind
	s.tags = norm
	s.reset()
	return nil
}

// Start configures the filter and shuffles from scratch. It returns the
// resulting state, Empty when no record carries any of tags.
func (s *Selector) Start(kind ports.Kind, tags []string) (State, error) {
	if err := s.Configure(kind, tags); err != nil {
		return s.state, err
	}
	return s.shuffle()
}

// Reshuffle draws a fresh permutation of the current filter and rewinds
// the cursor. It fails with ErrInvalidArgument when no filter is set.
func (s *Selector) Reshuffle() (State, error) {
	if s.kind == "" {
		return s.state, fmt.Errorf("%w: selector has no filter", ports.ErrInvalidArgument)
	}
	return s.shuffle()
}

// Next advances the cursor and returns the newly presented record.
// ok is false when nothing new was presented: the selector is Idle or
// Empty, or the shuffle is exhausted. Advancing past the last record is a
// no-op; the cursor stays on it.
func (s *Selector) Next() (ports.NameRecord, bool) {
	if s.state != StateActive {
		return ports.NameRecord{}, false
	}
	s.cursor++
	if s.cursor == len(s.order)-1 {
		s.state = StateExhausted
	}
	return s.order[s.cursor], true
}

// Current returns the record under the cursor, if any has been presented.
func (s *Selector) Current() (ports.NameRecord, bool) {
	if s.cursor < 0 || s.cursor >= len(s.order) {
		return ports.NameRecord{}, false
	}
	return s.order[s.cursor], true
}

// State returns the lifecycle state.
func (s *Selector) State() State { return s.state }

// Kind returns the configured kind, empty before Configure.
func (s *Selector) Kind() ports.Kind { return s.kind }

// Tags returns a copy of the configured tags, sorted and de-duplicated.
func (s *Selector) Tags() []string { return slices.Clone(s.tags) }

// Position reports how many records have been presented out of the total
// in the current shuffle.
func (s *Selector) Position() (presented, total int) {
	return s.cursor + 1, len(s.order)
}

// Remaining reports how many records Next can still present.
func (s *Selector) Remaining() int {
	return len(s.order) - (s.cursor + 1)
}

func (s *Selector) reset() {
	s.state = StateIdle
	s.order = nil
	s.cursor = -1
}

func (s *Selector) shuffle() (State, error) {
	recs, err := s.cat.ListByKind(s.kind)
	if err != nil {
		return s.state, err
	}

	order := query.FilterByAnyTag(recs, s.tags)
	Shuffle(s.rng, order)

	s.order = order
	s.cursor = -1
	if len(order) == 0 {
		s.state = StateEmpty
	} else {
		s.state = StateActive
	}
	return s.state, nil
}

// Shuffle permutes records in place with Fisher-Yates. Every permutation
// is equally likely given a uniform rng.
func Shuffle[T any](rng *rand.Rand, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

func normalizeTags(tags []string) []string {
	out := slices.Clone(tags)
	slices.Sort(out)
	return slices.Compact(out)
}
