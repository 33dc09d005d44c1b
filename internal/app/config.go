package app

import (
	"errors"
	"fmt"
	"slices"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/magnuspl/navnetips/internal/ports"
)

// Storage backends for the favorites store.
const (
	StorageBolt  = "bolt"
	StorageFile  = "file"
	StorageRedis = "redis"
)

// ErrParsingConfig wraps env parsing failures.
var ErrParsingConfig = errors.New("failed to parse config")

// Config holds initialization parameters for the App, read from the
// environment (and an optional .env file).
type Config struct {
	DataDir      string `env:"NAVNETIPS_DATA_DIR" envDefault:".navnetips"`
	Storage      string `env:"NAVNETIPS_STORAGE" envDefault:"bolt"`
	RedisURL     string `env:"NAVNETIPS_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	HTTPAddr     string `env:"NAVNETIPS_HTTP_ADDR" envDefault:"127.0.0.1:8080"`
	PageSize     int    `env:"NAVNETIPS_PAGE_SIZE" envDefault:"12"`
	CatalogPath  string `env:"NAVNETIPS_CATALOG"` // external YAML catalogue; empty = embedded
	LogLevel     string `env:"NAVNETIPS_LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"NAVNETIPS_LOG_FORMAT" envDefault:"console"`
	FavoritesKey string `env:"NAVNETIPS_FAVORITES_KEY" envDefault:"favoriteNames"`
	EventBuffer  int    `env:"NAVNETIPS_EVENT_BUFFER" envDefault:"16"` // queued favorites events per subscriber
}

// LoadConfig loads envFiles (default ".env"; missing files are ignored)
// and parses the process environment into a validated Config.
func LoadConfig(envFiles ...string) (Config, error) {
	// Ignore errors - the .env file might not exist and that's ok
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, cfg.Validate()
}

// ParseConfig parses a Config from an explicit environment map instead of
// the process environment.
func ParseConfig(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects values no component can run with.
func (c Config) Validate() error {
	if !slices.Contains([]string{StorageBolt, StorageFile, StorageRedis}, c.Storage) {
		return fmt.Errorf("%w: storage %q (want bolt, file or redis)", ports.ErrInvalidArgument, c.Storage)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("%w: page size %d", ports.ErrInvalidArgument, c.PageSize)
	}
	if c.EventBuffer < 1 {
		return fmt.Errorf("%w: event buffer %d", ports.ErrInvalidArgument, c.EventBuffer)
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("%w: log format %q (want console or json)", ports.ErrInvalidArgument, c.LogFormat)
	}
	if c.DataDir == "" {
		return fmt.Errorf("%w: empty data dir", ports.ErrInvalidArgument)
	}
	if c.FavoritesKey == "" {
		return fmt.Errorf("%w: empty favorites key", ports.ErrInvalidArgument)
	}
	return nil
}
