package ux

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"keycalc/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// Watcher follows preferences.json and reloads it when another process edits
// it. The parent directory is watched rather than the file so that editors
// that replace the file by rename are still seen.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	prefs       *PreferencesManager
	dir         string
	file        string
	debounceDur time.Duration
	pendingAt   time.Time
	updates     chan UserPreferences
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
}

// NewWatcher creates a watcher for pm's preferences file.
func NewWatcher(pm *PreferencesManager) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:     fw,
		prefs:       pm,
		dir:         filepath.Dir(pm.Path()),
		file:        filepath.Clean(pm.Path()),
		debounceDur: 150 * time.Millisecond,
		updates:     make(chan UserPreferences, 1),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Updates delivers preferences that changed on disk. Only the latest pending
// value is kept.
func (w *Watcher) Updates() <-chan UserPreferences {
	return w.updates
}

// Start begins watching. It is non-blocking and idempotent.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		logging.PrefsWarn("watcher: failed to create %s: %v", w.dir, err)
	}
	if err := w.watcher.Add(w.dir); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	logging.Prefs("watcher: watching %s", w.file)

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		logging.PrefsWarn("watcher: error closing: %v", err)
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.PrefsWarn("watcher error: %v", err)

		case <-ticker.C:
			w.processDebounced()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.file {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	w.mu.Lock()
	w.pendingAt = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) processDebounced() {
	w.mu.Lock()
	if w.pendingAt.IsZero() || time.Since(w.pendingAt) < w.debounceDur {
		w.mu.Unlock()
		return
	}
	w.pendingAt = time.Time{}
	w.mu.Unlock()

	changed, err := w.prefs.Reload()
	if err != nil {
		// Partially written files parse as errors; the next write retriggers.
		logging.PrefsWarn("watcher: reload failed: %v", err)
		return
	}
	if !changed {
		return
	}
	after := w.prefs.Get()

	logging.Prefs("watcher: preferences changed on disk: theme=%s sound=%v", after.Theme, after.SoundEnabled)
	select {
	case <-w.updates:
	default:
	}
	w.updates <- after
}
