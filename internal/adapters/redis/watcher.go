package redis

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Watcher implements ports.ChangeWatcher with a pub/sub subscription to
// the change channel of one key.
type Watcher struct {
	store *Store

	mu      sync.Mutex
	pubsub  *redis.PubSub
	done    chan struct{}
	stopped bool
}

// NewWatcher creates a watcher for keys of store.
func NewWatcher(store *Store) *Watcher {
	return &Watcher{store: store, done: make(chan struct{})}
}

// Watch subscribes to changes of key. onChange runs on the watcher's
// goroutine for every committed Update, including this process's own.
func (w *Watcher) Watch(key string, onChange func()) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return fmt.Errorf("redis watcher stopped")
	}
	if w.pubsub != nil {
		return fmt.Errorf("redis watcher already watching")
	}

	ctx := context.Background()
	ps := w.store.client.Subscribe(ctx, w.store.ChannelFor(key))
	// Wait for the subscription confirmation so no publish after Watch
	// returns is missed.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}
	w.pubsub = ps

	ch := ps.Channel()
	go func() {
		for {
			select {
			case _, ok := <-ch:
				if !ok {
					return
				}
				onChange()
			case <-w.done:
				return
			}
		}
	}()
	return nil
}

// Stop ends the subscription. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	if w.pubsub != nil {
		return w.pubsub.Close()
	}
	return nil
}
