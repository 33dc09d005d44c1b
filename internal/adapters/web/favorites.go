package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/magnuspl/navnetips/internal/domain/favorites"
	"github.com/magnuspl/navnetips/internal/ports"
	"go.uber.org/zap"
)

type toggleResult struct {
	Kind    ports.Kind `json:"kind"`
	Name    string     `json:"name"`
	Liked   bool       `json:"liked"`
	Warning string     `json:"warning,omitempty"`
}

func (s *Server) handleFavorites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, favorites.Resolve(s.cat, s.favs.List()))
}

// handleToggle flips a favorite. Only catalogue names can be liked. A
// storage failure still answers 200 with the new state and a warning.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	kind, err := ports.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	rec, ok := s.cat.Lookup(kind, chi.URLParam(r, "name"))
	if !ok {
		writeError(w, r, fmt.Errorf("%w: %s %q", ports.ErrNotFound, kind, chi.URLParam(r, "name")))
		return
	}

	liked, err := s.favs.Toggle(r.Context(), kind, rec.Name)
	res := toggleResult{Kind: kind, Name: rec.Name, Liked: liked}
	if err != nil {
		if !favorites.IsWarning(err) {
			writeError(w, r, err)
			return
		}
		res.Warning = err.Error()
	}
	writeJSON(w, http.StatusOK, res)
}

// handleFavoriteEvents streams favorites changes as server-sent events.
// Each event's data is a favorites.Event as JSON.
func (s *Server) handleFavoriteEvents(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	events := s.favs.Subscribe(r.Context())

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	if err := rc.Flush(); err != nil {
		s.log.Debug("event stream not flushable", zap.Error(err))
		return
	}

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				s.log.Error("encode favorites event", zap.Error(err))
				continue
			}
			if _, err := fmt.Fprintf(w, "event: favorites\ndata: %s\n\n", data); err != nil {
				return
			}
			if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
				return
			}
		case <-keepAlive.C:
			fmt.Fprint(w, ": ping\n\n")
			rc.Flush()
		case <-r.Context().Done():
			return
		}
	}
}
