// Package redis implements ports.KVStore and ports.ChangeWatcher on Redis
// for deployments where several instances share one favorites set. Update
// is an optimistic WATCH/MULTI/EXEC transaction retried on conflict, and
// every committed change is announced on a pub/sub channel per key.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrFailedToParseURL = errors.New("failed to parse redis connection url")
	ErrNotReady         = errors.New("redis is not ready")
	ErrConflict         = errors.New("redis update conflict: retries exhausted")
)

// Config is the connection configuration.
type Config struct {
	URL            string
	RetryAttempts  int
	RetryInterval  time.Duration
	ConnectTimeout time.Duration
}

// DefaultConfig returns a config for url with the default retry policy.
func DefaultConfig(url string) Config {
	return Config{
		URL:            url,
		RetryAttempts:  3,
		RetryInterval:  time.Second,
		ConnectTimeout: 10 * time.Second,
	}
}

// Connect parses cfg.URL and pings the server, retrying up to
// cfg.RetryAttempts times.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}

	for range max(cfg.RetryAttempts, 1) {
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}
	return nil, ErrNotReady
}
