package latex

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeRunner scripts compiler passes without spawning processes.
type fakeRunner struct {
	calls []Invocation
	// pass is called with the 1-based call number; nil means exit 0 with no output.
	pass func(n int, inv Invocation) (int, error)
}

func (f *fakeRunner) Run(_ context.Context, inv Invocation) (int, error) {
	f.calls = append(f.calls, inv)
	if f.pass == nil {
		return 0, nil
	}
	return f.pass(len(f.calls), inv)
}

// producePDF returns a pass func that writes <stem>.pdf into the -output-directory.
func producePDF(t *testing.T, exitCodes ...int) func(int, Invocation) (int, error) {
	t.Helper()
	return func(n int, inv Invocation) (int, error) {
		writePDF(t, inv)
		if n-1 < len(exitCodes) {
			return exitCodes[n-1], nil
		}
		return 0, nil
	}
}

func writePDF(t *testing.T, inv Invocation) {
	t.Helper()
	var outDir string
	for _, a := range inv.Args {
		if v, ok := strings.CutPrefix(a, "-output-directory="); ok {
			outDir = v
		}
	}
	require.NotEmpty(t, outDir)
	name := inv.Args[len(inv.Args)-1]
	stem := name[:len(name)-len(filepath.Ext(name))]
	require.NoError(t, os.WriteFile(filepath.Join(outDir, stem+OutputExt), []byte("%PDF-1.5\n"), 0o600))
}

// writeSource creates dir/name with minimal LaTeX content.
func writeSource(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("\\documentclass{beamer}\n\\begin{document}\\end{document}\n"), 0o600))
	return path
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func foundPath(name string) (string, error) { return "/usr/bin/" + name, nil }

func newTestDriver(r Runner, opts ...Option) *Driver {
	base := []Option{WithRunner(r), WithLookPath(foundPath), WithLogger(quietLogger()), WithStreams(io.Discard, io.Discard)}
	return NewDriver("xelatex", append(base, opts...)...)
}

// baseObserver ignores every callback; test observers embed it and override
// the ones they inspect.
type baseObserver struct{}

func (baseObserver) OnCompileStart(Source, string)    {}
func (baseObserver) OnPassStart(int)                  {}
func (baseObserver) OnPassComplete(PassResult)        {}
func (baseObserver) OnCompileComplete(*Result, error) {}
func (baseObserver) OnClean(string, []string)         {}
