package commands

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/texbuild/internal/latex"
	"git.home.luguber.info/inful/texbuild/internal/metrics"
	"git.home.luguber.info/inful/texbuild/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Source      string `arg:"" name:"source" help:"LaTeX source file (.tex)"`
	Output      string `short:"o" help:"Output directory (default: the source file's directory)"`
	Clean       bool   `help:"Remove auxiliary files after each successful compile"`
	MetricsAddr string `name:"metrics-addr" help:"Serve /metrics, /healthz and /status on this address (overrides watch.metrics_addr)"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	src, err := latex.NewSource(w.Source)
	if err != nil {
		return sourceError(w.Source, err)
	}

	addr := w.MetricsAddr
	if addr == "" {
		addr = g.Config.Watch.MetricsAddr
	}
	var (
		reg *prometheus.Registry
		rec metrics.Recorder
	)
	if addr != "" {
		reg = prometheus.NewRegistry()
		rec = metrics.NewPrometheusRecorder(reg)
	}

	d := g.newDriver(rec, root.Verbose)
	var last lastResult
	build := func(ctx context.Context) error {
		res, err := d.Compile(ctx, src.Path, latex.Options{OutputDir: w.Output, Verbose: root.Verbose})
		last.set(res)
		if err != nil {
			return err
		}
		if w.Clean {
			g.cleanAfterCompile(d, src.Path, w.Output)
		}
		return nil
	}

	watcher, err := watch.New(src.Dir, g.Config.Watch.Debounce, build, watch.WithLogger(g.Logger))
	if err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(g.Ctx)
	eg.Go(func() error { return watcher.Run(ctx) })
	if addr != "" {
		srv := metrics.NewServer(addr, reg, last.snapshot)
		eg.Go(func() error { return srv.Start(ctx) })
	}
	return eg.Wait()
}

// lastResult holds the most recent compile for /status.
type lastResult struct {
	mu  sync.RWMutex
	res *latex.Result
}

func (l *lastResult) set(res *latex.Result) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.res = res
}

func (l *lastResult) snapshot() any {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.res == nil {
		return nil
	}
	cp := *l.res
	return &cp
}
