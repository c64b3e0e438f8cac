// Package watch recompiles a document whenever its inputs change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/texbuild/internal/logfields"
)

// DefaultExtensions are the input files that trigger a rebuild.
var DefaultExtensions = []string{".tex", ".bib", ".sty", ".cls"}

var errWatcherClosed = errors.New("file watcher closed")

// BuildFunc runs one compile. Errors are logged and do not stop the watch.
type BuildFunc func(ctx context.Context) error

// Watcher monitors a directory and runs BuildFunc sequentially. A change seen
// while a build is running queues exactly one follow-up build.
type Watcher struct {
	dir      string
	debounce time.Duration
	exts     map[string]struct{}
	build    BuildFunc
	logger   *slog.Logger
	pending  chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithExtensions replaces the set of extensions that trigger a rebuild.
func WithExtensions(exts ...string) Option {
	return func(w *Watcher) {
		if len(exts) == 0 {
			return
		}
		w.exts = make(map[string]struct{}, len(exts))
		for _, e := range exts {
			w.exts[strings.ToLower(e)] = struct{}{}
		}
	}
}

// WithLogger replaces the slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a watcher for dir. A non-positive debounce rebuilds on the first
// relevant event.
func New(dir string, debounce time.Duration, build BuildFunc, opts ...Option) (*Watcher, error) {
	if build == nil {
		return nil, errors.New("watch: nil build func")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve watch directory: %w", err)
	}
	w := &Watcher{
		dir:      abs,
		debounce: debounce,
		build:    build,
		logger:   slog.Default(),
		pending:  make(chan struct{}, 1),
	}
	WithExtensions(DefaultExtensions...)(w)
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run builds once, then rebuilds on changes until ctx is done. It returns nil
// on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if cerr := fsw.Close(); cerr != nil {
			w.logger.Debug("Error closing file watcher", logfields.Error(cerr))
		}
	}()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", w.dir, err)
	}
	w.logger.Info("Watching for changes", "dir", w.dir, "debounce", w.debounce.String())

	w.queue()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.buildLoop(gctx) })
	g.Go(func() error { return w.eventLoop(gctx, fsw.Events, fsw.Errors) })
	return g.Wait()
}

// queue requests a build; it is a no-op when one is already pending.
func (w *Watcher) queue() {
	select {
	case w.pending <- struct{}{}:
	default:
	}
}

func (w *Watcher) buildLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.pending:
			start := time.Now()
			err := w.build(ctx)
			if ctx.Err() != nil {
				return nil
			}
			if err != nil {
				w.logger.Warn("Build failed, waiting for changes", logfields.Error(err))
				continue
			}
			w.logger.Debug("Build finished", logfields.DurationMS(float64(time.Since(start).Milliseconds())))
		}
	}
}

func (w *Watcher) eventLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return errWatcherClosed
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("Change detected", logfields.File(filepath.Base(ev.Name)), "op", ev.Op.String())
			if w.debounce <= 0 {
				w.queue()
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
			w.queue()
		case err, ok := <-errs:
			if !ok {
				return errWatcherClosed
			}
			w.logger.Error("File watcher error", logfields.Error(err))
		}
	}
}

// relevant reports whether ev touches a watched input. Chmod-only events and
// hidden files (editor swap and lock files) are ignored.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	_, ok := w.exts[strings.ToLower(filepath.Ext(base))]
	return ok
}
