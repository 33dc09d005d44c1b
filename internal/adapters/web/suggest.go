package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/magnuspl/navnetips/internal/domain/catalog"
	"github.com/magnuspl/navnetips/internal/domain/suggest"
	"github.com/magnuspl/navnetips/internal/ports"
)

const sessionCookie = "navnetips_session"

// session is one visitor's suggestion selector. The selector is not safe
// for concurrent use; mu serializes requests of the same visitor.
type session struct {
	mu       sync.Mutex
	sel      *suggest.Selector
	lastUsed time.Time
}

// sessions maps cookie ids to suggestion sessions and expires idle ones.
type sessions struct {
	cat *catalog.Catalogue
	ttl time.Duration
	now func() time.Time

	mu   sync.Mutex
	byID map[string]*session
}

func newSessions(cat *catalog.Catalogue, ttl time.Duration) *sessions {
	return &sessions{cat: cat, ttl: ttl, now: time.Now, byID: make(map[string]*session)}
}

// get returns the session for id, if it exists and has not expired.
// Expired sessions are swept on every call.
func (m *sessions) get(id string) (*session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
	sess, ok := m.byID[id]
	if ok {
		sess.lastUsed = m.now()
	}
	return sess, ok
}

func (m *sessions) create() (string, *session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
	id := uuid.NewString()
	sess := &session{sel: suggest.New(m.cat, nil), lastUsed: m.now()}
	m.byID[id] = sess
	return id, sess
}

func (m *sessions) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

func (m *sessions) sweepLocked() {
	cutoff := m.now().Add(-m.ttl)
	for id, sess := range m.byID {
		if sess.lastUsed.Before(cutoff) {
			delete(m.byID, id)
		}
	}
}

// fromRequest returns the caller's session. With create set, a visitor
// without a valid session gets a new one and a cookie.
func (m *sessions) fromRequest(w http.ResponseWriter, r *http.Request, create bool) (*session, bool) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if _, perr := uuid.Parse(c.Value); perr == nil {
			if sess, ok := m.get(c.Value); ok {
				return sess, true
			}
		}
	}
	if !create {
		return nil, false
	}
	id, sess := m.create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.ttl.Seconds()),
	})
	return sess, true
}

type suggestStartRequest struct {
	Kind string   `json:"kind"`
	Tags []string `json:"tags"`
}

type suggestView struct {
	State     string            `json:"state"`
	Kind      ports.Kind        `json:"kind,omitempty"`
	Tags      []string          `json:"tags,omitempty"`
	Current   *ports.NameRecord `json:"current,omitempty"`
	Presented int               `json:"presented"`
	Total     int               `json:"total"`
	Remaining int               `json:"remaining"`
}

func viewOf(sel *suggest.Selector) suggestView {
	presented, total := sel.Position()
	v := suggestView{
		State:     sel.State().String(),
		Kind:      sel.Kind(),
		Tags:      sel.Tags(),
		Presented: presented,
		Total:     total,
		Remaining: sel.Remaining(),
	}
	if rec, ok := sel.Current(); ok {
		v.Current = &rec
	}
	return v
}

func (s *Server) handleSuggestStart(w http.ResponseWriter, r *http.Request) {
	var req suggestStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", ports.ErrInvalidArgument, err))
		return
	}
	kind, err := ports.ParseKind(req.Kind)
	if err != nil {
		writeError(w, r, err)
		return
	}

	sess, _ := s.sessions.fromRequest(w, r, true)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if _, err := sess.sel.Start(kind, req.Tags); err != nil {
		writeError(w, r, err)
		return
	}
	// The first suggestion is presented right away, as the wizard does.
	sess.sel.Next()
	writeJSON(w, http.StatusOK, viewOf(sess.sel))
}

func (s *Server) handleSuggestNext(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sel *suggest.Selector) error {
		sel.Next()
		return nil
	})
}

func (s *Server) handleSuggestReshuffle(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sel *suggest.Selector) error {
		if _, err := sel.Reshuffle(); err != nil {
			return err
		}
		sel.Next()
		return nil
	})
}

func (s *Server) handleSuggestCurrent(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(*suggest.Selector) error { return nil })
}

// withSession runs fn on the caller's selector and answers with its view.
// A caller without a session gets 404.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(*suggest.Selector) error) {
	sess, ok := s.sessions.fromRequest(w, r, false)
	if !ok {
		writeError(w, r, fmt.Errorf("%w: no suggestion session, POST /api/suggest/start first", ports.ErrNotFound))
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := fn(sess.sel); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(sess.sel))
}
