package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	logAdapter "github.com/roastedbeans/modi-app/internal/adapters/log"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) handle(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestWatcherDispatchesSettledCapture(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}

	w := New(Config{
		Dir:           dir,
		Ext:           ".qmdl",
		MinFileSize:   16,
		DebounceDelay: 20 * time.Millisecond,
	}, rec.handle, logAdapter.NewNoopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := w.Run(ctx); err != nil {
			t.Errorf("watcher run: %v", err)
		}
	}()

	// Give the watcher a moment to register the directory.
	time.Sleep(50 * time.Millisecond)

	target := filepath.Join(dir, "new.qmdl")
	if err := os.WriteFile(target, make([]byte, 64), 0o644); err != nil {
		t.Fatal(err)
	}

	if !waitFor(t, 3*time.Second, func() bool { return len(rec.snapshot()) == 1 }) {
		t.Fatalf("capture was not dispatched: %v", rec.snapshot())
	}
	if rec.snapshot()[0] != target {
		t.Fatalf("dispatched %s, want %s", rec.snapshot()[0], target)
	}

	cancel()
	<-done
}

func TestWatcherFiltersExtensionAndSize(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}

	w := New(Config{
		Dir:           dir,
		Ext:           "qmdl", // normalized to .qmdl
		MinFileSize:   32,
		DebounceDelay: 20 * time.Millisecond,
	}, rec.handle, logAdapter.NewNoopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), make([]byte, 64), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "small.qmdl"), make([]byte, 8), 0o644); err != nil {
		t.Fatal(err)
	}
	accepted := filepath.Join(dir, "BIG.QMDL")
	if err := os.WriteFile(accepted, make([]byte, 64), 0o644); err != nil {
		t.Fatal(err)
	}

	if !waitFor(t, 3*time.Second, func() bool { return len(rec.snapshot()) >= 1 }) {
		t.Fatalf("accepted capture was not dispatched")
	}
	// Let any stray dispatches for the filtered files surface.
	time.Sleep(100 * time.Millisecond)

	got := rec.snapshot()
	if len(got) != 1 || got[0] != accepted {
		t.Fatalf("dispatched %v, want only %s", got, accepted)
	}

	cancel()
	<-done
}

func TestWatcherSerializesDispatch(t *testing.T) {
	dir := t.TempDir()

	var active, overlaps int32
	var dispatched int32
	handler := func(path string) {
		if atomic.AddInt32(&active, 1) > 1 {
			atomic.AddInt32(&overlaps, 1)
		}
		time.Sleep(40 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		atomic.AddInt32(&dispatched, 1)
	}

	w := New(Config{
		Dir:           dir,
		Ext:           ".qmdl",
		MinFileSize:   1,
		DebounceDelay: 20 * time.Millisecond,
	}, handler, logAdapter.NewNoopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)

	// Two files settle at the same time; their debounce timers fire on
	// separate goroutines but the handler must never run reentrantly.
	for _, name := range []string{"one.qmdl", "two.qmdl"} {
		if err := os.WriteFile(filepath.Join(dir, name), make([]byte, 32), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if !waitFor(t, 3*time.Second, func() bool { return atomic.LoadInt32(&dispatched) == 2 }) {
		t.Fatalf("dispatched %d captures, want 2", atomic.LoadInt32(&dispatched))
	}
	if n := atomic.LoadInt32(&overlaps); n != 0 {
		t.Fatalf("handler ran concurrently %d times, dispatch must be serialized", n)
	}

	cancel()
	<-done
}

func TestWatcherMissingDirectory(t *testing.T) {
	w := New(Config{Dir: filepath.Join(t.TempDir(), "absent"), Ext: ".qmdl"},
		func(string) {}, logAdapter.NewNoopLogger())
	if err := w.Run(context.Background()); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}
