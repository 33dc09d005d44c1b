// Package favorites is the liked-names store. One Store exists per running
// application; every view reads and mutates through it and observes
// changes through Subscribe.
//
// Favorites are keyed by (kind, case-folded name). The persisted payload
// is JSON (see Encode) under a single key of a ports.KVStore. Storage
// failures never block the in-memory effect of a toggle: they come back as
// a *PersistenceWarning next to the new membership state.
package favorites

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/magnuspl/navnetips/internal/ports"
	"go.uber.org/zap"
)

// DefaultKey is the storage key of the favorites payload.
const DefaultKey = "favoriteNames"

// PersistenceWarning reports a storage failure that was recovered locally.
// It wraps ports.ErrPersistenceUnavailable.
type PersistenceWarning struct {
	Op  string // "load", "toggle" or "reload"
	Err error
}

func (w *PersistenceWarning) Error() string {
	return fmt.Sprintf("favorites %s: %v: %v", w.Op, ports.ErrPersistenceUnavailable, w.Err)
}

func (w *PersistenceWarning) Unwrap() []error {
	return []error{ports.ErrPersistenceUnavailable, w.Err}
}

// IsWarning reports whether err is a recoverable persistence warning.
func IsWarning(err error) bool {
	var w *PersistenceWarning
	return errors.As(err, &w)
}

// Event is delivered to subscribers after the set changes.
type Event struct {
	// Favorites is the full set after the change.
	Favorites []Entry `json:"favorites"`
	// Toggled is the entry flipped by a local Toggle; nil when the change
	// came from storage (Reload).
	Toggled *Entry `json:"toggled,omitempty"`
	// Liked is the new membership state of Toggled.
	Liked bool `json:"liked"`
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithLogger sets the logger used for persistence warnings.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithBuffer sets the per-subscriber event buffer. When it is full the
// oldest queued event gives way to the new one.
func WithBuffer(n int) Option {
	return func(s *Store) { s.buffer = max(n, 1) }
}

// Store holds the favorites set. All methods are safe for concurrent use.
type Store struct {
	kv     ports.KVStore
	key    string
	log    *zap.Logger
	buffer int

	mu  sync.RWMutex // guards cur and unsaved; held across the storage round trip of Toggle
	cur *set
	// unsaved holds toggles whose write failed, at most one per entry.
	// They are replayed on every read until a write succeeds.
	unsaved []flip

	subMu  sync.RWMutex
	subs   map[*subscription]struct{}
	closed bool
}

type subscription struct {
	ch   chan Event
	once sync.Once
}

func (sub *subscription) close() {
	sub.once.Do(func() { close(sub.ch) })
}

// NewStore creates the store and hydrates it from kv. A failed or
// malformed read leaves the store empty; it never fails construction.
func NewStore(ctx context.Context, kv ports.KVStore, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		key:    DefaultKey,
		log:    zap.NewNop(),
		buffer: 16,
		cur:    newSet(nil),
		subs:   make(map[*subscription]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Load(ctx)
	return s
}

// Key returns the storage key.
func (s *Store) Key() string { return s.key }

// Load re-reads the persisted set, replaces the in-memory set with it and
// returns it. A missing key, malformed payload or storage failure yields
// an empty set; the failure is logged, never returned.
func (s *Store) Load(ctx context.Context) []Entry {
	entries, err := s.read(ctx)
	if err != nil {
		s.log.Warn("favorites load failed, starting empty", zap.String("key", s.key), zap.Error(err))
		entries = nil
	}

	s.mu.Lock()
	s.cur = newSet(entries)
	s.cur.replay(s.unsaved)
	out := s.cur.list()
	s.mu.Unlock()
	return out
}

// Reload re-reads the persisted set after an external change and notifies
// subscribers if it differs from the in-memory one. A failed read keeps
// the current set. Unsaved toggles stay applied on top of what was read.
// It reports whether the set changed.
func (s *Store) Reload(ctx context.Context) bool {
	entries, err := s.read(ctx)
	if err != nil {
		s.log.Warn("favorites reload failed, keeping current set", zap.String("key", s.key), zap.Error(err))
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := newSet(entries)
	next.replay(s.unsaved)
	if s.cur.equal(next) {
		return false
	}
	s.cur = next
	s.broadcast(Event{Favorites: next.list()})
	return true
}

// Has reports whether name is liked under kind. The comparison is
// case-insensitive.
func (s *Store) Has(kind ports.Kind, name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.has(kind, name)
}

// List returns the liked entries in the order they were added.
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.list()
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cur.entries)
}

// Toggle flips (kind, name) and synchronously persists the full set. It
// returns the new membership state.
//
// The flip is computed against the persisted set inside the store's atomic
// update, so concurrent toggles from other processes are not lost. When
// storage fails the flip is applied to the in-memory set alone, kept as
// unsaved, and a *PersistenceWarning is returned with the new state. The
// next successful write saves every unsaved toggle with it.
func (s *Store) Toggle(ctx context.Context, kind ports.Kind, name string) (bool, error) {
	if !kind.Valid() {
		return false, fmt.Errorf("%w: unknown kind %q", ports.ErrInvalidArgument, kind)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return false, fmt.Errorf("%w: empty name", ports.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		next  *set
		liked bool
	)
	err := s.kv.Update(ctx, s.key, func(current []byte) ([]byte, error) {
		entries, derr := Decode(current)
		if derr != nil {
			s.log.Warn("discarding malformed favorites payload", zap.String("key", s.key), zap.Error(derr))
			entries = nil
		}
		n := newSet(entries)
		n.replay(s.unsaved)
		liked = n.toggle(kind, name)
		next = n
		return Encode(n.entries)
	})

	var warn *PersistenceWarning
	if err != nil {
		warn = &PersistenceWarning{Op: "toggle", Err: err}
		s.log.Warn("favorites not saved", zap.String("kind", kind.String()), zap.String("name", name), zap.Error(err))
		next = s.cur.clone()
		liked = next.toggle(kind, name)
		s.remember(flip{kind: kind, name: name, liked: liked})
	} else if len(s.unsaved) > 0 {
		s.log.Info("unsaved favorites written", zap.Int("count", len(s.unsaved)))
		s.unsaved = nil
	}
	s.cur = next
	s.broadcast(Event{Favorites: next.list(), Toggled: &Entry{Kind: kind, Name: name}, Liked: liked})

	if warn != nil {
		return liked, warn
	}
	return liked, nil
}

// Unsaved reports how many toggles are only held in memory.
func (s *Store) Unsaved() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.unsaved)
}

// remember records f, replacing an earlier unsaved flip of the same entry.
// Caller holds s.mu.
func (s *Store) remember(f flip) {
	k := keyOf(f.kind, f.name)
	s.unsaved = slices.DeleteFunc(s.unsaved, func(o flip) bool { return keyOf(o.kind, o.name) == k })
	s.unsaved = append(s.unsaved, f)
}

// Subscribe returns a channel receiving an Event after every change. The
// subscription ends, and the channel is closed, when ctx is cancelled or
// the store is closed. A subscriber that falls behind loses its oldest
// queued events, never the latest one.
func (s *Store) Subscribe(ctx context.Context) <-chan Event {
	sub := &subscription{ch: make(chan Event, s.buffer)}

	s.subMu.Lock()
	defer s.subMu.Unlock()
	if s.closed {
		sub.close()
		return sub.ch
	}
	s.subs[sub] = struct{}{}

	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			s.unsubscribe(sub)
		}()
	}
	return sub.ch
}

// Close ends every subscription. The store stays usable for reads and
// toggles; new subscriptions receive a closed channel.
func (s *Store) Close() {
	s.subMu.Lock()
	if s.closed {
		s.subMu.Unlock()
		return
	}
	s.closed = true
	for sub := range s.subs {
		sub.close()
	}
	clear(s.subs)
	s.subMu.Unlock()
}

func (s *Store) unsubscribe(sub *subscription) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	delete(s.subs, sub)
	sub.close()
}

// broadcast delivers ev to every subscriber without blocking. Callers hold
// s.mu, so events leave in commit order. A full buffer loses its oldest
// event instead of ev: the last event a subscriber receives is always the
// current set.
func (s *Store) broadcast(ev Event) {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	for sub := range s.subs {
		select {
		case sub.ch <- ev:
			continue
		default:
		}
		select {
		case <-sub.ch:
			s.log.Debug("favorites subscriber lagging, oldest event dropped")
		default:
		}
		select {
		case sub.ch <- ev:
		default:
		}
	}
}

func (s *Store) read(ctx context.Context) ([]Entry, error) {
	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, &PersistenceWarning{Op: "load", Err: err}
	}
	return Decode(data)
}
