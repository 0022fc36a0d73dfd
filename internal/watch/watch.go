// Package watch re-runs the session summary whenever the history file
// settles after a change.
package watch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the file must stay quiet before a re-run.
const DefaultDebounce = 500 * time.Millisecond

// Watcher observes one file. Runs happen on the event loop goroutine, so
// they never overlap.
type Watcher struct {
	path     string
	debounce time.Duration
	run      func(ctx context.Context) error
	stderr   io.Writer
	fsw      *fsnotify.Watcher
}

// New starts watching path. The parent directory is watched rather than
// the file so editors that replace the file by rename are still seen,
// and so the file need not exist yet.
func New(path string, debounce time.Duration, run func(ctx context.Context) error, stderr io.Writer) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{path: abs, debounce: debounce, run: run, stderr: stderr, fsw: fsw}, nil
}

// Run processes events until ctx is done. A failed run is reported and
// the loop keeps going.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := w.run(ctx); err != nil {
				fmt.Fprintf(w.stderr, "wrapup: %v\n", err)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(w.stderr, "wrapup: watch: %v\n", err)
		}
	}
}

// Close stops watching without running the loop.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}
