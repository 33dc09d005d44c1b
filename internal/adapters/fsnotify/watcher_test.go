package fsnotify

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/magnuspl/navnetips/internal/adapters/filekv"
	"github.com/magnuspl/navnetips/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.ChangeWatcher = (*Watcher)(nil)

// waitForCallback waits up to timeout for the callback channel to receive a value.
func waitForCallback(ch <-chan struct{}, timeout time.Duration) bool {
	select {
	case <-ch:
		return true
	case <-time.After(timeout):
		return false
	}
}

func newWatchedStore(t *testing.T, key string) (*filekv.Store, string, <-chan struct{}) {
	t.Helper()
	dir := t.TempDir()
	kv, err := filekv.NewStore(dir)
	require.NoError(t, err)

	w, err := NewWatcher(dir)
	require.NoError(t, err)
	t.Cleanup(func() { w.Stop() })

	ch := make(chan struct{}, 10)
	require.NoError(t, w.Watch(key, func() { ch <- struct{}{} }))
	return kv, dir, ch
}

func TestWatcher_FiresOnUpdate(t *testing.T) {
	kv, _, ch := newWatchedStore(t, "favoriteNames")

	err := kv.Update(context.Background(), "favoriteNames", func([]byte) ([]byte, error) {
		return []byte(`["Astrid"]`), nil
	})
	require.NoError(t, err)

	assert.True(t, waitForCallback(ch, 2*time.Second), "callback should fire after a write")
}

func TestWatcher_FiresOnRemove(t *testing.T) {
	kv, _, ch := newWatchedStore(t, "favoriteNames")
	ctx := context.Background()

	require.NoError(t, kv.Update(ctx, "favoriteNames", func([]byte) ([]byte, error) { return []byte("x"), nil }))
	require.True(t, waitForCallback(ch, 2*time.Second))

	require.NoError(t, kv.Update(ctx, "favoriteNames", func([]byte) ([]byte, error) { return nil, nil }))
	assert.True(t, waitForCallback(ch, 2*time.Second), "callback should fire after a delete")
}

func TestWatcher_IgnoresOtherKeys(t *testing.T) {
	kv, dir, ch := newWatchedStore(t, "favoriteNames")

	require.NoError(t, kv.Update(context.Background(), "other", func([]byte) ([]byte, error) {
		return []byte("x"), nil
	}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))

	assert.False(t, waitForCallback(ch, 300*time.Millisecond), "unrelated files must not fire")
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Stop()

	var calls atomic.Int32
	require.NoError(t, w.Watch("k", func() { calls.Add(1) }))

	path := filepath.Join(dir, filekv.FileName("k"))
	for i := range 5 {
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i)}, 0o644))
	}

	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, w.Watch("k", func() {}))
	assert.Error(t, w.Watch("k", func() {}), "one key per watcher")

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
	assert.Error(t, w.Watch("k", func() {}))
}
