// Package watch observes a capture directory with fsnotify and hands
// newly written capture files that pass the extension and size filters
// to a caller-supplied handler.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/roastedbeans/modi-app/internal/ports"
)

// Handler is invoked for every capture file that settles past the
// filters. Invocations are serialized: at most one handler call is in
// flight at a time, even when several files settle together, so a
// handler may safely share a single-threaded pipeline across calls.
// It runs off the Run goroutine; long work delays later dispatches.
type Handler func(path string)

// Config holds watcher tunables.
type Config struct {
	// Dir is the capture directory to observe.
	Dir string

	// Ext is the capture extension to match, case-insensitively.
	Ext string

	// MinFileSize is the minimum-size gate applied before dispatch.
	MinFileSize int64

	// DebounceDelay is how long a file must stay quiet after its last
	// write before it is handed off. Modem loggers append for a long
	// time; dispatching on the first write would hand over a torso.
	DebounceDelay time.Duration
}

// DefaultDebounce is used when Config.DebounceDelay is zero.
const DefaultDebounce = 2 * time.Second

// Watcher observes one directory and dispatches settled capture files.
type Watcher struct {
	cfg     Config
	handler Handler
	logger  ports.Logger

	mu       sync.Mutex
	debounce map[string]*time.Timer

	// handlerMu serializes handler invocations; debounce timers fire on
	// their own goroutines.
	handlerMu sync.Mutex
}

// New creates a watcher. Run must be called to start observing.
func New(cfg Config, handler Handler, logger ports.Logger) *Watcher {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = DefaultDebounce
	}
	if cfg.Ext != "" && !strings.HasPrefix(cfg.Ext, ".") {
		cfg.Ext = "." + cfg.Ext
	}
	return &Watcher{
		cfg:      cfg,
		handler:  handler,
		logger:   logger,
		debounce: make(map[string]*time.Timer),
	}
}

// Run watches the directory until the context is canceled. It returns
// the fsnotify setup error, if any; event-time errors are logged and
// tolerated.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(w.cfg.Dir); err != nil {
		return err
	}

	w.logger.Info("watching capture directory",
		ports.String("dir", w.cfg.Dir),
		ports.String("ext", w.cfg.Ext))

	for {
		select {
		case <-ctx.Done():
			w.stopTimers()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !w.matches(event.Name) {
				continue
			}
			w.schedule(event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("capture watcher error", ports.Err(err))
		}
	}
}

// matches checks the extension filter only; the size gate runs after
// the debounce so growing files get their final size checked.
func (w *Watcher) matches(path string) bool {
	return strings.EqualFold(filepath.Ext(path), w.cfg.Ext)
}

// schedule (re)arms the per-file debounce timer.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.debounce[path]; ok {
		t.Stop()
	}
	w.debounce[path] = time.AfterFunc(w.cfg.DebounceDelay, func() {
		w.dispatch(path)
	})
}

// dispatch applies the size gate and invokes the handler.
func (w *Watcher) dispatch(path string) {
	w.mu.Lock()
	delete(w.debounce, path)
	w.mu.Unlock()

	info, err := os.Stat(path)
	if err != nil {
		w.logger.Warn("capture vanished before dispatch", ports.String("file", path), ports.Err(err))
		return
	}
	if info.Size() < w.cfg.MinFileSize {
		w.logger.Debug("capture below minimum size, not dispatched",
			ports.String("file", path),
			ports.Int64("size", info.Size()))
		return
	}

	w.handlerMu.Lock()
	defer w.handlerMu.Unlock()
	w.handler(path)
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.debounce {
		t.Stop()
		delete(w.debounce, path)
	}
}
