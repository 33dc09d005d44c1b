package web

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/magnuspl/navnetips/internal/domain/query"
	"github.com/magnuspl/navnetips/internal/ports"
)

type healthResult struct {
	Status  string `json:"status"`
	Names   int    `json:"names"`
	Liked   int    `json:"liked"`
	Unsaved int    `json:"unsaved"`
	Uptime  string `json:"uptime"`
}

type kindInfo struct {
	Kind  ports.Kind `json:"kind"`
	Slug  string     `json:"slug"`
	Label string     `json:"label"`
	Count int        `json:"count"`
}

// nameView is a record as shown in a list: the record plus its kind and
// whether it is liked.
type nameView struct {
	ports.NameRecord
	Kind  ports.Kind `json:"kind"`
	Slug  string     `json:"slug"`
	Liked bool       `json:"liked"`
}

func (s *Server) view(kind ports.Kind, r ports.NameRecord) nameView {
	return nameView{NameRecord: r, Kind: kind, Slug: kind.Slug(), Liked: s.favs.Has(kind, r.Name)}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	total := 0
	for _, k := range ports.AllKinds() {
		total += s.cat.Len(k)
	}
	writeJSON(w, http.StatusOK, healthResult{
		Status:  "ok",
		Names:   total,
		Liked:   s.favs.Len(),
		Unsaved: s.favs.Unsaved(),
		Uptime:  time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleKinds(w http.ResponseWriter, r *http.Request) {
	out := make([]kindInfo, 0, 4)
	for _, k := range ports.AllKinds() {
		out = append(out, kindInfo{Kind: k, Slug: k.Slug(), Label: k.Label(), Count: s.cat.Len(k)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cat.Tags())
}

// handleList serves GET /api/names/{kind} with the query parameters
// q, tag, letter, origin, sort, dir, page and pageSize. A page outside the
// result is clamped to the nearest one.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	kind, err := ports.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	q, err := s.parseQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	q.Kind = kind

	page, err := query.Execute(s.cat, q)
	if err == nil && query.ClampPage(q.Page, page.TotalPages) != page.Page {
		q.Page = query.ClampPage(q.Page, page.TotalPages)
		page, err = query.Execute(s.cat, q)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	items := make([]nameView, len(page.Items))
	for i, rec := range page.Items {
		items[i] = s.view(kind, rec)
	}
	writeJSON(w, http.StatusOK, query.Page[nameView]{
		Items:      items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
		Total:      page.Total,
	})
}

func (s *Server) parseQuery(r *http.Request) (query.Query, error) {
	v := r.URL.Query()
	q := query.Query{
		Search:   v.Get("q"),
		Tag:      v.Get("tag"),
		Letter:   v.Get("letter"),
		Origin:   v.Get("origin"),
		PageSize: s.pageSize,
	}
	if raw := v.Get("sort"); raw != "" {
		key, err := query.ParseSortKey(raw)
		if err != nil {
			return q, err
		}
		q.SortKey = key
	}
	if raw := v.Get("dir"); raw != "" {
		dir, err := query.ParseDirection(raw)
		if err != nil {
			return q, err
		}
		q.Direction = dir
	}
	var err error
	if q.Page, err = intParam(v.Get("page"), 1); err != nil {
		return q, err
	}
	if q.PageSize, err = intParam(v.Get("pageSize"), s.pageSize); err != nil {
		return q, err
	}
	if q.PageSize < 1 || q.Page < 1 {
		return q, fmt.Errorf("%w: page and pageSize must be at least 1", ports.ErrInvalidArgument)
	}
	return q, nil
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ports.ErrInvalidArgument, raw)
	}
	return n, nil
}

func (s *Server) handleOrigins(w http.ResponseWriter, r *http.Request) {
	kind, err := ports.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	recs, _ := s.cat.ListByKind(kind)
	writeJSON(w, http.StatusOK, query.Origins(recs))
}

func (s *Server) handleLetters(w http.ResponseWriter, r *http.Request) {
	kind, err := ports.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	recs, _ := s.cat.ListByKind(kind)
	writeJSON(w, http.StatusOK, query.LetterCounts(recs))
}

func (s *Server) handleName(w http.ResponseWriter, r *http.Request) {
	kind, err := ports.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	name := chi.URLParam(r, "name")
	rec, ok := s.cat.Lookup(kind, name)
	if !ok {
		writeError(w, r, fmt.Errorf("%w: %s %q", ports.ErrNotFound, kind, name))
		return
	}
	writeJSON(w, http.StatusOK, s.view(kind, rec))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	hits := query.SearchAll(s.cat, r.URL.Query().Get("q"))
	out := make([]nameView, len(hits))
	for i, h := range hits {
		out[i] = s.view(h.Kind, h.Record)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePopular(w http.ResponseWriter, r *http.Request) {
	kind, err := ports.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	list := s.cat.Popular(kind)
	if list == nil {
		list = []ports.RankedName{}
	}
	writeJSON(w, http.StatusOK, list)
}
