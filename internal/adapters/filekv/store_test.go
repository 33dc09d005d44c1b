package filekv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/magnuspl/navnetips/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.KVStore = (*Store)(nil)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "kv"))
	require.NoError(t, err)
	return s
}

func TestGet_Missing(t *testing.T) {
	s := newTestStore(t)

	data, err := s.Get(context.Background(), "favoriteNames")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestUpdate_WritesOneFilePerKey(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.Update(ctx, "favoriteNames", func(cur []byte) ([]byte, error) {
		assert.Nil(t, cur)
		return []byte(`["Astrid"]`), nil
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(s.dir, FileName("favoriteNames")))
	require.NoError(t, err)
	assert.Equal(t, `["Astrid"]`, string(raw))

	data, err := s.Get(ctx, "favoriteNames")
	require.NoError(t, err)
	assert.Equal(t, `["Astrid"]`, string(data))
}

func TestUpdate_NilDeletes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Update(ctx, "k", func([]byte) ([]byte, error) { return []byte("v"), nil }))
	require.NoError(t, s.Update(ctx, "k", func([]byte) ([]byte, error) { return nil, nil }))
	require.NoError(t, s.Update(ctx, "k", func([]byte) ([]byte, error) { return nil, nil }))

	data, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestUpdate_FnErrorLeavesValue(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Update(ctx, "k", func([]byte) ([]byte, error) { return []byte("before"), nil }))

	boom := errors.New("boom")
	err := s.Update(ctx, "k", func([]byte) ([]byte, error) { return []byte("after"), boom })
	assert.ErrorIs(t, err, boom)

	data, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "before", string(data))
}

func TestInvalidKeys(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, key := range []string{"", "../escape", "a/b", ".hidden", "with space"} {
		_, err := s.Get(ctx, key)
		assert.ErrorIs(t, err, ports.ErrInvalidArgument, key)
		err = s.Update(ctx, key, func([]byte) ([]byte, error) { return []byte("x"), nil })
		assert.ErrorIs(t, err, ports.ErrInvalidArgument, key)
	}
}

func TestUpdate_ConcurrentStoresShareTheLock(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "kv")
	a, err := NewStore(dir)
	require.NoError(t, err)
	b, err := NewStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 30 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := a
			if i%2 == 1 {
				s = b
			}
			err := s.Update(ctx, "counter", func(cur []byte) ([]byte, error) {
				n, _ := strconv.Atoi(string(cur))
				return []byte(fmt.Sprint(n + 1)), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	data, err := a.Get(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, "30", string(data))
}

func TestCancelledContext(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
