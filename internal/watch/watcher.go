// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch monitors a directory for new PDF files and hands each one,
// debounced and serially, to a handler.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
)

// Handler processes one settled PDF path. Handlers run on the single worker
// goroutine, one call at a time.
type Handler func(path string)

// queueSize bounds how many settled paths can wait for the worker.
const queueSize = 64

// Watcher debounces filesystem events for one directory (non-recursive) and
// feeds PDF paths to a handler through a single worker goroutine.
type Watcher struct {
	dir    string
	delay  time.Duration
	handle Handler

	mu         sync.Mutex
	debouncers map[string]func(func())

	queue chan string
}

// New creates a watcher for dir. Each PDF path is handed to handler once it
// has produced no filesystem events for delay.
func New(dir string, delay time.Duration, handler Handler) *Watcher {
	return &Watcher{
		dir:        dir,
		delay:      delay,
		handle:     handler,
		debouncers: make(map[string]func(func())),
		queue:      make(chan string, queueSize),
	}
}

// Run watches the directory until ctx is canceled. A slow handler delays
// later files but conversions never overlap. On cancellation Run stops
// intake and waits for the handler to finish the file in flight.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.work(ctx)
	}()
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

// handleEvent debounces Create and Write events for PDF files. The timer
// re-arms on every event, so a file still being written settles only once
// writes stop for the full delay.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if !strings.EqualFold(filepath.Ext(event.Name), ".pdf") {
		return
	}
	if info, err := os.Stat(event.Name); err != nil || info.IsDir() {
		return
	}

	path := event.Name
	slog.Debug("event", "op", event.Op.String(), "path", path)

	w.debouncer(path)(func() {
		w.forget(path)
		select {
		case w.queue <- path:
		case <-ctx.Done():
		}
	})
}

// debouncer returns the per-path debounced caller, creating it on first use.
func (w *Watcher) debouncer(path string) func(func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	d, ok := w.debouncers[path]
	if !ok {
		d = debounce.New(w.delay)
		w.debouncers[path] = d
	}
	return d
}

// forget drops the per-path debouncer once the path settles, so a later
// reappearance of the same name starts a fresh debounce window.
func (w *Watcher) forget(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.debouncers, path)
}

// work drains the queue serially. Cancellation wins over queued paths: a
// select with both channels ready picks at random, so each receive re-checks
// ctx before handling. It also re-checks that the file still exists: it may
// have been renamed or removed during the debounce window.
func (w *Watcher) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case path := <-w.queue:
			if ctx.Err() != nil {
				return
			}
			if _, err := os.Stat(path); err != nil {
				slog.Info("file vanished before conversion", "path", path)
				continue
			}
			w.handle(path)
		}
	}
}
