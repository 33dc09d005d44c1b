package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces keys and change channels.
const DefaultPrefix = "navnetips:"

const maxRetries = 10

// Store implements ports.KVStore on a Redis client.
type Store struct {
	client *redis.Client
	prefix string
	owned  bool
}

// NewStore wraps client. Close does not close a client passed in here.
func NewStore(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

// Open connects with cfg and returns a store owning the client.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	client, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s := NewStore(client, "")
	s.owned = true
	return s, nil
}

// Close closes the client if the store opened it.
func (s *Store) Close() error {
	if s.owned {
		return s.client.Close()
	}
	return nil
}

// ChannelFor returns the pub/sub channel announcing changes of key.
func (s *Store) ChannelFor(key string) string {
	return s.prefix + "changed:" + key
}

func (s *Store) redisKey(key string) string {
	return s.prefix + key
}

// Get returns the value stored under key.
// Returns nil, nil if the key does not exist.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return data, nil
}

// Update runs fn under WATCH and commits its result with MULTI/EXEC,
// publishing a change notification in the same transaction. When another
// client changes key in between, the transaction aborts and fn runs again
// on the new value. A nil result deletes the key.
func (s *Store) Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error {
	rkey := s.redisKey(key)

	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, rkey).Bytes()
		if errors.Is(err, redis.Nil) {
			current = nil
		} else if err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if next == nil {
				pipe.Del(ctx, rkey)
			} else {
				pipe.Set(ctx, rkey, next, 0)
			}
			pipe.Publish(ctx, s.ChannelFor(key), "1")
			return nil
		})
		return err
	}

	for range maxRetries {
		err := s.client.Watch(ctx, txf, rkey)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return fmt.Errorf("redis update %q: %w", key, err)
	}
	return fmt.Errorf("redis update %q: %w", key, ErrConflict)
}
