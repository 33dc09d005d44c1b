// Package filekv implements ports.KVStore as one file per key in a
// directory, the on-disk analogue of a browser's local storage. Several
// processes may share the directory: Update holds an advisory lock file
// per key for its read-modify-write, and values are replaced by atomic
// rename so readers never see a torn write.
package filekv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/gofrs/flock"
	"github.com/magnuspl/navnetips/internal/ports"
	"github.com/natefinch/atomic"
)

const (
	valueExt = ".json"
	lockExt  = ".lock"

	lockRetry = 10 * time.Millisecond
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Store implements ports.KVStore on a directory.
type Store struct {
	dir         string
	lockTimeout time.Duration
}

// NewStore creates dir if needed and returns a store rooted there.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("filekv mkdir: %w", err)
	}
	return &Store{dir: dir, lockTimeout: 5 * time.Second}, nil
}

// FileName returns the base name of the file holding key.
func FileName(key string) string { return key + valueExt }

// Close is a no-op; the store holds no open handles between calls.
func (s *Store) Close() error { return nil }

// Get returns the value stored under key.
// Returns nil, nil if the key does not exist.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	return readValue(path)
}

// Update runs fn on the current value of key while holding the key's lock
// file, then atomically replaces the value. A nil result deletes the key.
func (s *Store) Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	lctx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	lock := flock.New(filepath.Join(s.dir, key+lockExt))
	locked, err := lock.TryLockContext(lctx, lockRetry)
	if err != nil {
		return fmt.Errorf("filekv lock %q: %w", key, err)
	}
	if !locked {
		return fmt.Errorf("filekv lock %q: not acquired", key)
	}
	defer lock.Unlock()

	current, err := readValue(path)
	if err != nil {
		return err
	}

	next, err := fn(current)
	if err != nil {
		return err
	}

	if next == nil {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("filekv delete %q: %w", key, err)
		}
		return nil
	}
	if err := atomic.WriteFile(path, bytes.NewReader(next)); err != nil {
		return fmt.Errorf("filekv write %q: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("%w: storage key %q", ports.ErrInvalidArgument, key)
	}
	return filepath.Join(s.dir, FileName(key)), nil
}

func readValue(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("filekv read %s: %w", filepath.Base(path), err)
	}
	return data, nil
}
