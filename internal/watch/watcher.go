// Package watch re-runs the parse stage for a source whenever its raw
// HTML file changes, keeping the parsed store fresh while pages are
// being re-fetched or hand-edited.
package watch

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/groundplane/webrag/internal/logger"
)

// DefaultDebounce coalesces the bursts of write events editors and
// download tools emit for a single save.
const DefaultDebounce = 500 * time.Millisecond

// Handler is invoked with the source id of a changed raw HTML file.
// Invocations are serialized: the watcher never runs the handler for
// two sources concurrently, so handlers may rebuild shared stores.
type Handler func(sourceID string)

// Watcher watches a raw HTML directory.
type Watcher struct {
	dir      string
	debounce time.Duration
	handler  Handler

	// Expired debounce timers hand their source id to the Run loop,
	// which is the only goroutine that calls the handler.
	due  chan string
	quit chan struct{}

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a watcher over dir calling handler per changed source.
func New(dir string, handler Handler) *Watcher {
	return &Watcher{
		dir:      dir,
		debounce: DefaultDebounce,
		handler:  handler,
		due:      make(chan string, 16),
		quit:     make(chan struct{}),
		pending:  make(map[string]*time.Timer),
	}
}

// Run blocks watching for changes until ctx is cancelled. Run must be
// called at most once per Watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	defer w.stopPending()

	if err := fw.Add(w.dir); err != nil {
		return err
	}
	logger.Info("watching %s", w.dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sourceID := <-w.due:
			w.handler(sourceID)
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".html") {
				continue
			}
			w.schedule(sourceIDFromPath(event.Name))
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// schedule debounces per source id so one save triggers one re-parse.
// The expired timer only enqueues; the handler runs on the Run goroutine.
func (w *Watcher) schedule(sourceID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[sourceID]; ok {
		t.Stop()
	}
	w.pending[sourceID] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, sourceID)
		w.mu.Unlock()
		select {
		case w.due <- sourceID:
		case <-w.quit:
		}
	})
}

// stopPending releases timers still in flight when Run exits, so their
// goroutines never block on the no-longer-drained due channel.
func (w *Watcher) stopPending() {
	close(w.quit)
	w.mu.Lock()
	defer w.mu.Unlock()
	for id, t := range w.pending {
		t.Stop()
		delete(w.pending, id)
	}
}

func sourceIDFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
