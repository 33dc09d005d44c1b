package web

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/magnuspl/navnetips/internal/domain/catalog"
	"github.com/magnuspl/navnetips/internal/domain/favorites"
	"github.com/magnuspl/navnetips/internal/domain/query"
	"go.uber.org/zap"
)

// Config holds the server's dependencies.
type Config struct {
	Catalogue *catalog.Catalogue
	Favorites *favorites.Store
	Logger    *zap.Logger
	// PageSize is the default listing page size; 0 means query.DefaultPageSize.
	PageSize int
	// SessionTTL is how long an idle suggestion session is kept; 0 means 30m.
	SessionTTL time.Duration
}

// Server serves the JSON API and the HTML page over HTTP.
type Server struct {
	cat      *catalog.Catalogue
	favs     *favorites.Store
	log      *zap.Logger
	pageSize int
	sessions *sessions

	router   chi.Router
	listener net.Listener
	httpSrv  *http.Server
	// cancel ends the base context of every request, which closes
	// long-lived event streams before Shutdown waits for them.
	cancel   context.CancelFunc
	started  time.Time
	stopOnce sync.Once
}

// NewServer creates the server and its router.
func NewServer(cfg Config) *Server {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = query.DefaultPageSize
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	s := &Server{
		cat:      cfg.Catalogue,
		favs:     cfg.Favorites,
		log:      log,
		pageSize: pageSize,
		sessions: newSessions(cfg.Catalogue, ttl),
		started:  time.Now(),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Code: "route_not_found", Message: "no route for " + req.URL.Path})
	})

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFileFS(w, req, staticFS, "static/index.html")
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/kinds", s.handleKinds)
		r.Get("/tags", s.handleTags)
		r.Get("/search", s.handleSearch)
		r.Get("/popular/{kind}", s.handlePopular)

		r.Route("/names/{kind}", func(r chi.Router) {
			r.Get("/", s.handleList)
			r.Get("/origins", s.handleOrigins)
			r.Get("/letters", s.handleLetters)
			r.Get("/{name}", s.handleName)
		})

		r.Get("/favorites", s.handleFavorites)
		r.Get("/favorites/events", s.handleFavoriteEvents)
		r.Post("/favorites/{kind}/{name}", s.handleToggle)

		r.Get("/suggest", s.handleSuggestCurrent)
		r.Post("/suggest/start", s.handleSuggestStart)
		r.Post("/suggest/next", s.handleSuggestNext)
		r.Post("/suggest/reshuffle", s.handleSuggestReshuffle)
	})
	return r
}

// Handler returns the router; tests serve it through httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins listening on addr ("127.0.0.1:8080"; port 0 picks a free one).
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	base, cancel := context.WithCancel(context.Background())
	s.listener = ln
	s.cancel = cancel
	s.started = time.Now()
	s.httpSrv = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return base },
	}

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error("http server stopped", zap.Error(err))
		}
	}()
	s.log.Info("http server listening", zap.String("addr", ln.Addr().String()))
	return nil
}

// Stop gracefully shuts down the HTTP server. Idempotent.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		if s.httpSrv == nil {
			return
		}
		s.cancel()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpSrv.Shutdown(ctx); err != nil {
			s.log.Warn("http server shutdown", zap.Error(err))
		}
	})
}

// Addr returns the bound address, empty before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// URL returns the page URL.
func (s *Server) URL() string {
	return "http://" + s.Addr()
}
