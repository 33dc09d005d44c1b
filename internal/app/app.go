// Package app wires the catalogue, the favorites store and its storage
// backend, the change watcher and the HTTP server into one application
// instance, and owns their lifecycle.
package app

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/magnuspl/navnetips/internal/adapters/bbolt"
	"github.com/magnuspl/navnetips/internal/adapters/filekv"
	fsw "github.com/magnuspl/navnetips/internal/adapters/fsnotify"
	rdb "github.com/magnuspl/navnetips/internal/adapters/redis"
	"github.com/magnuspl/navnetips/internal/adapters/web"
	"github.com/magnuspl/navnetips/internal/domain/catalog"
	"github.com/magnuspl/navnetips/internal/domain/favorites"
	"github.com/magnuspl/navnetips/internal/ports"
	"github.com/magnuspl/navnetips/names"
	"go.uber.org/zap"
)

// App is the running application. Exactly one favorites.Store exists per
// App; every surface (CLI commands, HTTP handlers) goes through it.
type App struct {
	Config    Config
	Paths     *Paths
	Log       *zap.Logger
	Catalogue *catalog.Catalogue
	KV        ports.KVStore
	Watcher   ports.ChangeWatcher // nil when the backend has no change feed
	Favorites *favorites.Store
	WebServer *web.Server

	serving bool
}

// New creates an App with all dependencies wired. Does not start services.
func New(ctx context.Context, cfg Config, log *zap.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	paths := NewPaths(cfg.DataDir)
	if err := paths.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	cat, err := LoadCatalogue(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalogue: %w", err)
	}

	kv, watcher, err := openStorage(ctx, cfg, paths)
	if err != nil {
		return nil, err
	}

	favs := favorites.NewStore(ctx, kv,
		favorites.WithKey(cfg.FavoritesKey),
		favorites.WithBuffer(cfg.EventBuffer),
		favorites.WithLogger(log.Named("favorites")),
	)

	a := &App{
		Config:    cfg,
		Paths:     paths,
		Log:       log,
		Catalogue: cat,
		KV:        kv,
		Watcher:   watcher,
		Favorites: favs,
	}
	a.WebServer = web.NewServer(web.Config{
		Catalogue: cat,
		Favorites: favs,
		Logger:    log.Named("http"),
		PageSize:  cfg.PageSize,
	})
	return a, nil
}

// LoadCatalogue loads the YAML catalogue at path, or the embedded one when
// path is empty.
func LoadCatalogue(path string) (*catalog.Catalogue, error) {
	if path != "" {
		return catalog.LoadFile(path)
	}
	return catalog.Load(names.FS, "v1")
}

// openStorage opens the configured KV backend and, where the backend can
// report changes made by other processes, its watcher.
func openStorage(ctx context.Context, cfg Config, paths *Paths) (ports.KVStore, ports.ChangeWatcher, error) {
	switch cfg.Storage {
	case StorageBolt:
		store, err := bbolt.NewStore(paths.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("open store (is another navnetips process using %s?): %w", paths.DB, err)
		}
		return store, nil, nil

	case StorageFile:
		store, err := filekv.NewStore(paths.KVDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		watcher, err := fsw.NewWatcher(paths.KVDir)
		if err != nil {
			return nil, nil, fmt.Errorf("create watcher: %w", err)
		}
		return store, watcher, nil

	case StorageRedis:
		store, err := rdb.Open(ctx, rdb.DefaultConfig(cfg.RedisURL))
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		return store, rdb.NewWatcher(store), nil
	}
	return nil, nil, fmt.Errorf("%w: storage %q", ports.ErrInvalidArgument, cfg.Storage)
}

// StartWatcher subscribes to external favorites changes. Non-fatal if
// the backend has no watcher or setup fails.
func (a *App) StartWatcher() {
	if a.Watcher == nil {
		return
	}
	err := a.Watcher.Watch(a.Favorites.Key(), a.onFavoritesChanged)
	if err != nil {
		a.Log.Warn("favorites watcher unavailable", zap.Error(err))
	}
}

// Start starts the watcher and the HTTP server on addr (empty means
// Config.HTTPAddr), and records the bound address for discovery.
func (a *App) Start(addr string) error {
	if addr == "" {
		addr = a.Config.HTTPAddr
	}
	a.StartWatcher()
	if err := a.WebServer.Start(addr); err != nil {
		return fmt.Errorf("start http server: %w", err)
	}
	a.serving = true

	if err := os.WriteFile(a.Paths.AddrFile, []byte(a.WebServer.Addr()), 0644); err != nil {
		a.Log.Warn("server address not recorded", zap.String("path", a.Paths.AddrFile), zap.Error(err))
	}
	if err := os.WriteFile(a.Paths.PIDFile, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
		a.Log.Warn("server pid not recorded", zap.String("path", a.Paths.PIDFile), zap.Error(err))
	}
	return nil
}

// Stop gracefully shuts down all services and closes storage.
func (a *App) Stop() error {
	if a.Watcher != nil {
		if err := a.Watcher.Stop(); err != nil {
			a.Log.Warn("favorites watcher stop", zap.Error(err))
		}
	}
	if a.serving {
		a.WebServer.Stop()
		a.Paths.CleanEphemeral()
		a.serving = false
	}
	a.Favorites.Close()
	return a.KV.Close()
}

// onFavoritesChanged runs on the watcher goroutine after another process
// (or instance) changed the persisted favorites.
func (a *App) onFavoritesChanged() {
	if a.Favorites.Reload(context.Background()) {
		a.Log.Debug("favorites reloaded after external change", zap.Int("count", a.Favorites.Len()))
	}
}

// Liked resolves the favorites to catalogue records for display. Entries
// whose name is no longer in the catalogue are skipped.
func (a *App) Liked() []ports.Hit {
	resolved := favorites.Resolve(a.Catalogue, a.Favorites.List())
	out := make([]ports.Hit, 0, len(resolved))
	for _, l := range resolved {
		if l.Record != nil {
			out = append(out, ports.Hit{Record: *l.Record, Kind: l.Kind})
		}
	}
	return out
}
