// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

import "context"

// KVStore is the durable key-value primitive behind the favorites store.
// Values are opaque byte blobs; the caller owns the encoding.
//
// Update must be atomic with respect to every other writer of the same key,
// including writers in other processes sharing the backing store. A crash
// mid-write must not corrupt the previously committed value.
type KVStore interface {
	// Get returns the value stored under key.
	// Returns nil, nil if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Update runs a read-modify-write on key. fn receives the current value
	// (nil when absent) and returns the replacement. fn may be invoked more
	// than once when the adapter retries after a conflicting write, so it
	// must not have side effects. An error from fn aborts the update.
	Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error

	// Close releases the backing store. Safe to call once.
	Close() error
}
