// Package bbolt implements ports.KVStore using bbolt (embedded B+ tree).
// All keys live in a single top-level bucket. Writes are transactional: a
// crash mid-write cannot corrupt previously committed data, and bbolt's
// exclusive file lock keeps a second process from opening the same file.
package bbolt

import (
	"context"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketKV = []byte("kv")

// Store implements ports.KVStore backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
// Opening fails after one second if another process holds the file.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketKV)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("bbolt init: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key.
// Returns nil, nil if the key does not exist.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketKV)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			// Copy: v is only valid for the life of the transaction.
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bbolt get %q: %w", key, err)
	}
	return data, nil
}

// Update runs fn on the current value of key and stores its result in one
// read-write transaction. bbolt allows a single writer at a time, so fn
// runs exactly once and sees the latest committed value. A nil result
// deletes the key.
func (s *Store) Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketKV)
		if err != nil {
			return err
		}

		var current []byte
		if v := b.Get([]byte(key)); v != nil {
			current = make([]byte, len(v))
			copy(current, v)
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		if next == nil {
			return b.Delete([]byte(key))
		}
		return b.Put([]byte(key), next)
	})
	if err != nil {
		return fmt.Errorf("bbolt update %q: %w", key, err)
	}
	return nil
}
