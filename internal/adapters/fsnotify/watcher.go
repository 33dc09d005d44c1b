// Package fsnotify implements ports.ChangeWatcher for the filekv store using
// github.com/fsnotify/fsnotify. It watches the store directory and fires
// when the file of the watched key is written, replaced or removed by any
// process. Bursts of events (atomic replace emits several) are debounced
// into one callback.
package fsnotify

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/magnuspl/navnetips/internal/adapters/filekv"
)

const debounceInterval = 50 * time.Millisecond

// Watcher implements ports.ChangeWatcher using fsnotify.
type Watcher struct {
	dir     string
	fw      *fsnotify.Watcher
	done    chan struct{}
	started bool
	stopped bool
	mu      sync.Mutex

	// OnError receives watcher errors; nil discards them.
	OnError func(error)
}

// NewWatcher creates a watcher for a filekv directory.
func NewWatcher(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		dir:  dir,
		fw:   fw,
		done: make(chan struct{}),
	}, nil
}

// Watch starts monitoring the file of key. onChange runs on the watcher's
// goroutine once per burst of events, after the burst settles. A Watcher
// serves one key; a second Watch call fails.
func (w *Watcher) Watch(key string, onChange func()) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return fmt.Errorf("fsnotify watcher stopped")
	}
	if w.started {
		return fmt.Errorf("fsnotify watcher already watching")
	}

	absDir, err := filepath.Abs(w.dir)
	if err != nil {
		return err
	}
	// Watch the directory, not the file: atomic replace swaps the inode and
	// a watch on the old file would go silent.
	if err := w.fw.Add(absDir); err != nil {
		return fmt.Errorf("fsnotify add %s: %w", absDir, err)
	}
	w.started = true

	target := filekv.FileName(key)
	go w.loop(target, onChange)
	return nil
}

func (w *Watcher) loop(target string, onChange func()) {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
				continue
			}
			// Trailing debounce: restart the timer on every event.
			if timer == nil {
				timer = time.NewTimer(debounceInterval)
			} else {
				timer.Reset(debounceInterval)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange()

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			if w.OnError != nil {
				w.OnError(err)
			}

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// Stop ends monitoring and releases all resources.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}
