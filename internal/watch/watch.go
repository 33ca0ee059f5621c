// Package watch reports debounced changes to a fixed set of files.
//
// Parent directories are watched rather than the files themselves so that
// editors which save by rename-and-replace keep being observed.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultQuiet is the debounce window used when New gets quiet ≤ 0.
const DefaultQuiet = 200 * time.Millisecond

// ErrNoPaths indicates New was called without files to watch.
var ErrNoPaths = errors.New("watch: no paths")

// Change is one debounced batch of modified files.
type Change struct {
	Paths []string
	Time  time.Time
}

// Watcher batches fsnotify events for its files.
type Watcher struct {
	fsw    *fsnotify.Watcher
	files  map[string]bool
	quiet  time.Duration
	events chan Change
	log    *slog.Logger
}

// New starts watching the parent directories of paths. A nil logger
// discards.
func New(paths []string, quiet time.Duration, lg *slog.Logger) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, ErrNoPaths
	}
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	if lg == nil {
		lg = slog.New(slog.DiscardHandler)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	w := &Watcher{
		fsw:    fsw,
		files:  make(map[string]bool, len(paths)),
		quiet:  quiet,
		events: make(chan Change, 1),
		log:    lg,
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch: %w", err)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err = fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	lg.Debug("watching", "files", len(w.files), "dirs", len(dirs))

	return w, nil
}

// Events returns the channel of debounced changes. It is closed when Run
// returns.
func (w *Watcher) Events() <-chan Change { return w.events }

// Run processes events until ctx is done, then closes the underlying
// watcher and the Events channel.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.events)
	defer w.fsw.Close()

	timer := time.NewTimer(w.quiet)
	timer.Stop()
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil || !w.files[name] {
				continue
			}
			pending[name] = true
			timer.Reset(w.quiet)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			ch := Change{Paths: make([]string, 0, len(pending)), Time: time.Now()}
			for p := range pending {
				ch.Paths = append(ch.Paths, p)
			}
			sort.Strings(ch.Paths)
			pending = make(map[string]bool)
			w.log.Debug("files changed", "paths", ch.Paths)

			select {
			case w.events <- ch:
			case <-ctx.Done():
				return
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error("watcher error", "error", err)
		}
	}
}

// Watch runs a Watcher over paths and calls fn for every change until ctx
// is done or fn returns an error.
func Watch(ctx context.Context, paths []string, quiet time.Duration, lg *slog.Logger, fn func(Change) error) error {
	w, err := New(paths, quiet, lg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go w.Run(ctx)

	for ch := range w.Events() {
		if err = fn(ch); err != nil {
			cancel()
			for range w.Events() {
			}
			return err
		}
	}

	return ctx.Err()
}
