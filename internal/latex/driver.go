package latex

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/google/uuid"

	terrors "git.home.luguber.info/inful/texbuild/internal/errors"
	"git.home.luguber.info/inful/texbuild/internal/gitmeta"
	"git.home.luguber.info/inful/texbuild/internal/logfields"
	"git.home.luguber.info/inful/texbuild/internal/metrics"
)

// batchFlags are passed to every run, ahead of -output-directory.
var batchFlags = []string{"-interaction=nonstopmode", "-file-line-error"}

// Options are the per-compile inputs.
type Options struct {
	OutputDir string // empty means the source's directory
	Verbose   bool   // stream engine output live instead of capturing it
}

// Driver runs the two-pass compile against one external engine.
type Driver struct {
	compiler        string
	extraArgs       []string
	auxExtensions   []string
	sourceDateEpoch bool
	runner          Runner
	lookPath        func(string) (string, error)
	recorder        metrics.Recorder
	observers       observers
	stdout          io.Writer
	stderr          io.Writer
	logger          *slog.Logger
}

// Option configures a Driver.
type Option func(*Driver)

// WithRunner replaces the process runner (tests inject fakes here).
func WithRunner(r Runner) Option {
	return func(d *Driver) {
		if r != nil {
			d.runner = r
		}
	}
}

// WithLookPath replaces PATH resolution of the compiler binary.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(d *Driver) {
		if fn != nil {
			d.lookPath = fn
		}
	}
}

// WithExtraArgs adds engine arguments placed before the source file name.
func WithExtraArgs(args ...string) Option {
	return func(d *Driver) { d.extraArgs = append(d.extraArgs, args...) }
}

// WithAuxExtensions overrides the extensions Clean removes.
func WithAuxExtensions(exts []string) Option {
	return func(d *Driver) {
		if len(exts) > 0 {
			d.auxExtensions = append([]string(nil), exts...)
		}
	}
}

// WithSourceDateEpoch derives SOURCE_DATE_EPOCH from the source's git HEAD
// unless the environment already sets it.
func WithSourceDateEpoch(enabled bool) Option {
	return func(d *Driver) { d.sourceDateEpoch = enabled }
}

// WithRecorder reports pass and build metrics to rec.
func WithRecorder(rec metrics.Recorder) Option {
	return func(d *Driver) {
		if rec != nil {
			d.recorder = rec
		}
	}
}

// WithObserver registers an additional lifecycle observer.
func WithObserver(o Observer) Option {
	return func(d *Driver) {
		if o != nil {
			d.observers = append(d.observers, o)
		}
	}
}

// WithStreams sets where verbose engine output goes.
func WithStreams(stdout, stderr io.Writer) Option {
	return func(d *Driver) {
		if stdout != nil {
			d.stdout = stdout
		}
		if stderr != nil {
			d.stderr = stderr
		}
	}
}

// WithLogger replaces the slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDriver creates a driver for the given engine binary (name or path).
func NewDriver(compiler string, opts ...Option) *Driver {
	d := &Driver{
		compiler:      compiler,
		auxExtensions: append([]string(nil), AuxExtensions...),
		runner:        ExecRunner{},
		lookPath:      exec.LookPath,
		recorder:      metrics.NoopRecorder{},
		stdout:        os.Stdout,
		stderr:        os.Stderr,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.observers = append(observers{recorderObserver{rec: d.recorder}}, d.observers...)
	return d
}

// Compiler returns the configured engine binary.
func (d *Driver) Compiler() string { return d.compiler }

// Compile validates sourcePath, runs the engine twice and verifies the PDF.
// The returned Result is never nil. A nil error means the PDF exists in the
// output directory after the second pass, whatever the exit codes were.
func (d *Driver) Compile(ctx context.Context, sourcePath string, opts Options) (*Result, error) {
	res := &Result{
		BuildID:  uuid.NewString(),
		Source:   sourcePath,
		Compiler: d.compiler,
		Started:  time.Now(),
	}
	log := d.logger.With(logfields.BuildID(res.BuildID))

	err := d.compile(ctx, log, res, opts)
	res.Finished = time.Now()
	if err != nil {
		res.Error = err.Error()
		log.Debug("Compile failed", logfields.Source(res.Source), logfields.Error(err))
	}
	d.observers.OnCompileComplete(res, err)
	return res, err
}

func (d *Driver) compile(ctx context.Context, log *slog.Logger, res *Result, opts Options) error {
	src, err := NewSource(res.Source)
	if err != nil {
		if errors.Is(err, ErrInvalidExtension) {
			return terrors.InvalidExtension(res.Source, SourceExt, err)
		}
		return terrors.SourceNotFound(res.Source, err)
	}
	res.Source = src.Path

	outDir, err := ResolveOutputDir(src, opts.OutputDir, true)
	if err != nil {
		return terrors.OutputDirError(opts.OutputDir, err)
	}
	res.OutputDir = outDir
	res.Output = src.OutputPath(outDir)

	bin, err := d.lookPath(d.compiler)
	if err != nil {
		return terrors.CompilerNotFound(d.compiler, fmt.Errorf("%w: %w", ErrCompilerNotFound, err))
	}

	d.observers.OnCompileStart(src, outDir)
	log.Info("Compiling document",
		logfields.Source(src.Path),
		logfields.Compiler(bin),
		logfields.OutputDir(outDir))

	inv := Invocation{
		Binary: bin,
		Args:   d.arguments(src, outDir),
		Dir:    src.Dir,
		Env:    d.environment(log, src),
	}

	var lastOutput string
	for pass := 1; pass <= Passes; pass++ {
		pr, output, err := d.runPass(ctx, inv, pass, opts.Verbose)
		res.Passes = append(res.Passes, pr)
		d.observers.OnPassComplete(pr)
		if err != nil {
			return d.passError(pass, err)
		}
		lastOutput = output

		attrs := []any{logfields.Pass(pass), logfields.ExitCode(pr.ExitCode), logfields.DurationMS(float64(pr.Duration.Microseconds()) / 1000)}
		switch {
		case pr.ExitCode == 0:
			log.Debug("Compiler pass finished", attrs...)
		case pass < Passes:
			// Unresolved references on the first pass are expected.
			log.Warn("Compiler pass reported problems, continuing", append(attrs, "preview", pr.Preview)...)
		default:
			log.Error("Final compiler pass failed", append(attrs, "preview", pr.Preview)...)
		}
	}
	res.Diagnostics = parseDiagnostics(lastOutput)

	info, err := os.Stat(res.Output)
	if err != nil {
		final, _ := res.FinalPass()
		cause := fmt.Errorf("%w: %s (final exit code %d)", ErrOutputMissing, res.Output, final.ExitCode)
		if final.Preview != "" {
			cause = fmt.Errorf("%w:\n%s", cause, final.Preview)
		}
		return terrors.OutputMissing(res.Output, cause).WithContext("exit_code", final.ExitCode)
	}
	if info.ModTime().Before(res.Started.Truncate(time.Second)) {
		log.Warn("Output file predates this compile; the engine may not have rewritten it", logfields.Output(res.Output))
	}

	res.Success = true
	res.OutputBytes = info.Size()
	log.Info("Compile succeeded", logfields.Output(res.Output), logfields.SizeBytes(info.Size()))
	return nil
}

// runPass runs one pass. output holds the captured stdout (empty when verbose).
func (d *Driver) runPass(ctx context.Context, inv Invocation, pass int, verbose bool) (PassResult, string, error) {
	d.observers.OnPassStart(pass)

	var stdout, stderr bytes.Buffer
	if verbose {
		inv.Stdout, inv.Stderr = d.stdout, d.stderr
	} else {
		inv.Stdout, inv.Stderr = &stdout, &stderr
	}

	start := time.Now()
	code, err := d.runner.Run(ctx, inv)
	pr := PassResult{Pass: pass, ExitCode: code, Duration: time.Since(start)}
	if err != nil {
		return pr, "", err
	}
	if !verbose && code != 0 {
		limit := finalPassPreview
		if pass < Passes {
			limit = firstPassPreview
		}
		pr.Preview = preview(stdout.String(), stderr.String(), limit)
	}
	return pr, stdout.String(), nil
}

func (d *Driver) passError(pass int, err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return terrors.ProcessFailed(pass, fmt.Errorf("%w: %w", ErrCanceled, err))
	case errors.Is(err, ErrCompilerNotFound):
		return terrors.CompilerNotFound(d.compiler, err)
	default:
		return terrors.ProcessFailed(pass, fmt.Errorf("%w: %w", ErrProcessFailed, err))
	}
}

// arguments builds the engine command line; identical for both passes.
func (d *Driver) arguments(src Source, outDir string) []string {
	args := make([]string, 0, len(batchFlags)+len(d.extraArgs)+2)
	args = append(args, batchFlags...)
	args = append(args, "-output-directory="+outDir)
	args = append(args, d.extraArgs...)
	return append(args, src.Name)
}

func (d *Driver) environment(log *slog.Logger, src Source) []string {
	if !d.sourceDateEpoch {
		return nil
	}
	if _, ok := os.LookupEnv(gitmeta.EnvSourceDateEpoch); ok {
		return nil
	}
	epoch, err := gitmeta.SourceDateEpoch(src.Dir)
	if err != nil {
		log.Debug("SOURCE_DATE_EPOCH not derived from git", logfields.Error(err))
		return nil
	}
	log.Debug("Using git commit time for SOURCE_DATE_EPOCH", "epoch", epoch)
	return []string{gitmeta.EnvSourceDateEpoch + "=" + epoch}
}
