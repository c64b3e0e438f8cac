package latex

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine is a POSIX shell stand-in for xelatex: it records its arguments
// and working directory, then writes <stem>.pdf into -output-directory.
const fakeEngine = `#!/bin/sh
out=""
for a in "$@"; do
  case "$a" in
    -output-directory=*) out="${a#-output-directory=}" ;;
  esac
  name="$a"
done
echo "$PWD|$*" >> "$FAKE_ENGINE_LOG"
stem="${name%.tex}"
if [ "$FAKE_ENGINE_NO_PDF" != "1" ]; then
  printf '%%PDF-1.5\n' > "$out/$stem.pdf"
  : > "$out/$stem.aux"
  : > "$out/$stem.log"
fi
exit "${FAKE_ENGINE_EXIT:-0}"
`

func installFakeEngine(t *testing.T) (logPath string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake engine is a POSIX shell script")
	}
	bin := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(bin, "xelatex"), []byte(fakeEngine), 0o755))
	logPath = filepath.Join(t.TempDir(), "calls.log")
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Setenv("FAKE_ENGINE_LOG", logPath)
	return logPath
}

func TestExecRunner_CompileWithFakeEngine(t *testing.T) {
	logPath := installFakeEngine(t)
	dir := t.TempDir()
	src := writeSource(t, dir, "deck.tex")
	outDir := filepath.Join(t.TempDir(), "out")

	d := NewDriver("xelatex", WithLogger(quietLogger()))
	res, err := d.Compile(context.Background(), src, Options{OutputDir: outDir})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "deck.pdf"))
	assert.True(t, res.Success)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, lines[0], lines[1])
	assert.True(t, strings.HasPrefix(lines[0], dir+"|"), "engine must run in the source directory: %s", lines[0])
	assert.Contains(t, lines[0], "-interaction=nonstopmode -file-line-error -output-directory="+outDir+" deck.tex")
}

func TestExecRunner_NonZeroExitWithoutPDF(t *testing.T) {
	installFakeEngine(t)
	t.Setenv("FAKE_ENGINE_NO_PDF", "1")
	t.Setenv("FAKE_ENGINE_EXIT", "3")
	src := writeSource(t, t.TempDir(), "deck.tex")

	res, err := NewDriver("xelatex", WithLogger(quietLogger())).Compile(context.Background(), src, Options{})
	require.ErrorIs(t, err, ErrOutputMissing)
	require.Len(t, res.Passes, 2)
	assert.Equal(t, 3, res.Passes[0].ExitCode)
	assert.Equal(t, 3, res.Passes[1].ExitCode)
}

func TestExecRunner_CompilerMissingFromPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("PATH semantics differ on windows")
	}
	t.Setenv("PATH", t.TempDir())
	src := writeSource(t, t.TempDir(), "deck.tex")

	_, err := NewDriver("xelatex", WithLogger(quietLogger())).Compile(context.Background(), src, Options{})
	require.ErrorIs(t, err, ErrCompilerNotFound)
}

func TestExecRunner_ReportsExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}
	code, err := ExecRunner{}.Run(context.Background(), Invocation{Binary: "/bin/sh", Args: []string{"-c", "exit 7"}})
	require.NoError(t, err)
	assert.Equal(t, 7, code)
}

func TestExecRunner_MissingBinary(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), Invocation{Binary: "texbuild-definitely-not-installed"})
	require.ErrorIs(t, err, ErrCompilerNotFound)
}

func TestCleanAfterFakeEngineCompile(t *testing.T) {
	installFakeEngine(t)
	dir := t.TempDir()
	src := writeSource(t, dir, "deck.tex")
	unrelated := filepath.Join(dir, "other.aux")
	require.NoError(t, os.WriteFile(unrelated, nil, 0o600))

	d := NewDriver("xelatex", WithLogger(quietLogger()))
	_, err := d.Compile(context.Background(), src, Options{})
	require.NoError(t, err)

	removed, err := d.Clean(src, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"deck.aux", "deck.log"}, removed)
	assert.FileExists(t, filepath.Join(dir, "deck.pdf"))
	assert.FileExists(t, src)
	assert.FileExists(t, unrelated)
}
