package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/texbuild/internal/config"
	"git.home.luguber.info/inful/texbuild/internal/console"
	terrors "git.home.luguber.info/inful/texbuild/internal/errors"
	"git.home.luguber.info/inful/texbuild/internal/latex"
	"git.home.luguber.info/inful/texbuild/internal/logfields"
	"git.home.luguber.info/inful/texbuild/internal/metrics"
)

// Global is bound into every command: process streams, the signal context,
// and the logger and configuration prepared in AfterApply.
type Global struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Logger *slog.Logger
	Config *config.Config
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path (optional)" default:"texbuild.yaml"`
	Verbose   bool             `short:"v" help:"Stream compiler output live and enable debug logging"`
	LogLevel  string           `name:"log-level" help:"Log level: debug, info, warn or error (overrides logging.level)"`
	LogFormat string           `name:"log-format" help:"Log format: text or json (overrides logging.format)"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Compile CompileCmd `cmd:"" default:"withargs" help:"Compile a LaTeX document with two engine passes (default command)"`
	Clean   CleanCmd   `cmd:"" help:"Remove auxiliary files left behind by a compile"`
	Check   CheckCmd   `cmd:"" help:"Verify the compiler is installed and print its version"`
	Watch   WatchCmd   `cmd:"" help:"Compile, then recompile whenever the document's inputs change"`
	Info    VersionCmd `cmd:"" name:"version" help:"Show version information"`
}

// AfterApply runs after flag parsing; load configuration and set up logging once.
func (c *CLI) AfterApply(g *Global) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return terrors.ConfigInvalid(c.Config, err)
	}
	if c.LogLevel != "" {
		cfg.Logging.Level = config.NormalizeLogLevel(c.LogLevel)
	}
	if c.LogFormat != "" {
		cfg.Logging.Format = config.NormalizeLogFormat(c.LogFormat)
	}
	if c.Verbose {
		cfg.Logging.Level = config.LogLevelDebug
	}

	g.Config = cfg
	g.Logger = NewLogger(g.Stderr, cfg.Logging)
	slog.SetDefault(g.Logger)
	return nil
}

// NewLogger builds the slog logger described by lc.
func NewLogger(w io.Writer, lc config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: lc.Level.SlogLevel()}
	if lc.Format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// newDriver wires the configured compiler, the console printer and rec.
func (g *Global) newDriver(rec metrics.Recorder, verbose bool) *latex.Driver {
	cfg := g.Config
	opts := []latex.Option{
		latex.WithExtraArgs(cfg.Compiler.ExtraArgs...),
		latex.WithAuxExtensions(cfg.Clean.Extensions),
		latex.WithSourceDateEpoch(cfg.Compiler.SourceDateEpoch == config.SourceDateEpochAuto),
		latex.WithObserver(console.NewPrinter(g.Stdout, g.Stderr, verbose)),
		latex.WithStreams(g.Stdout, g.Stderr),
		latex.WithLogger(g.Logger),
		latex.WithRecorder(rec),
	}
	return latex.NewDriver(cfg.Compiler.Binary, opts...)
}

// cleanAfterCompile removes auxiliary files after a successful compile. Its
// problems are warnings only; they never turn a good compile into a failure.
func (g *Global) cleanAfterCompile(d *latex.Driver, source, outputDir string) {
	if _, err := d.Clean(source, outputDir); err != nil {
		g.Logger.Warn("Some auxiliary files could not be removed", logfields.Error(err))
	}
}

// sourceError classifies a latex.NewSource failure the way Compile does.
func sourceError(path string, err error) error {
	if errors.Is(err, latex.ErrInvalidExtension) {
		return terrors.InvalidExtension(path, latex.SourceExt, err)
	}
	return terrors.SourceNotFound(path, err)
}
