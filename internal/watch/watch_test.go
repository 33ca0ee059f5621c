package watch_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rcsp/internal/watch"
)

const quiet = 50 * time.Millisecond

func waitChange(t *testing.T, w *watch.Watcher) watch.Change {
	t.Helper()
	select {
	case ch, ok := <-w.Events():
		require.True(t, ok, "events closed")
		return ch
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	return watch.Change{}
}

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("0"), 0o644))

	w, err := watch.New([]string{file}, quiet, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(file, []byte{byte('1' + i)}, 0o644))
	}
	ch := waitChange(t, w)
	abs, _ := filepath.Abs(file)
	assert.Equal(t, []string{abs}, ch.Paths)

	// the burst produced a single batch
	select {
	case extra := <-w.Events():
		t.Fatalf("unexpected second change: %v", extra)
	case <-time.After(4 * quiet):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	other := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(file, []byte("0"), 0o644))

	w, err := watch.New([]string{file}, quiet, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	select {
	case ch := <-w.Events():
		t.Fatalf("unexpected change: %v", ch)
	case <-time.After(4 * quiet):
	}

	// replace-by-rename still counts
	tmp := filepath.Join(dir, "a.txt.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("1"), 0o644))
	require.NoError(t, os.Rename(tmp, file))
	ch := waitChange(t, w)
	assert.Len(t, ch.Paths, 1)
}

func TestWatcher_ClosesOnCancel(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.txt")
	w, err := watch.New([]string{file}, quiet, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { w.Run(ctx); close(done) }()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
	_, ok := <-w.Events()
	assert.False(t, ok)
}

func TestNew_Errors(t *testing.T) {
	_, err := watch.New(nil, quiet, nil)
	assert.ErrorIs(t, err, watch.ErrNoPaths)

	_, err = watch.New([]string{filepath.Join(t.TempDir(), "missing", "a.txt")}, quiet, nil)
	assert.Error(t, err)
}

func TestWatch_StopsOnCallbackError(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("0"), 0o644))

	stop := errors.New("stop")
	done := make(chan error, 1)
	ready := make(chan struct{})
	go func() {
		close(ready)
		done <- watch.Watch(context.Background(), []string{file}, quiet, nil, func(watch.Change) error {
			return stop
		})
	}()
	<-ready

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(quiet)
	defer tick.Stop()
	for {
		select {
		case err := <-done:
			assert.ErrorIs(t, err, stop)
			return
		case <-tick.C:
			// keep writing until the watcher is registered
			require.NoError(t, os.WriteFile(file, []byte("1"), 0o644))
		case <-deadline:
			t.Fatal("Watch did not return")
		}
	}
}
