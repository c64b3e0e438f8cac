package latex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o600))
	}
}

func TestClean_NoAuxFilesIsNoop(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "slides.tex")

	removed, err := newTestDriver(&fakeRunner{}).Clean(src, "")
	require.NoError(t, err)
	assert.Empty(t, removed)
	assert.FileExists(t, src)
}

func TestClean_RemovesExactlyStemPlusKnownExtensions(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "slides.tex")
	touch(t, dir,
		"slides.aux", "slides.log", "slides.nav", "slides.out", "slides.snm",
		"slides.toc", "slides.vrb", "slides.synctex.gz", "slides.fdb_latexmk", "slides.fls",
		"slides.pdf", "slides.bib", "notes.aux", "slides.aux.bak")

	removed, err := newTestDriver(&fakeRunner{}).Clean(src, "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"slides.aux", "slides.log", "slides.nav", "slides.out", "slides.snm",
		"slides.toc", "slides.vrb", "slides.synctex.gz", "slides.fdb_latexmk", "slides.fls",
	}, removed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var left []string
	for _, e := range entries {
		left = append(left, e.Name())
	}
	assert.ElementsMatch(t, []string{"slides.tex", "slides.pdf", "slides.bib", "notes.aux", "slides.aux.bak"}, left)
}

func TestClean_UsesOutputDir(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	src := writeSource(t, srcDir, "slides.tex")
	touch(t, srcDir, "slides.aux")
	touch(t, outDir, "slides.aux", "slides.toc")

	removed, err := newTestDriver(&fakeRunner{}).Clean(src, outDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"slides.aux", "slides.toc"}, removed)
	assert.FileExists(t, filepath.Join(srcDir, "slides.aux"))
}

func TestClean_MissingOutputDirIsNoop(t *testing.T) {
	src := writeSource(t, t.TempDir(), "slides.tex")
	missing := filepath.Join(t.TempDir(), "never-created")

	removed, err := newTestDriver(&fakeRunner{}).Clean(src, missing)
	require.NoError(t, err)
	assert.Empty(t, removed)
	assert.NoDirExists(t, missing)
}

func TestClean_CustomExtensions(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "paper.tex")
	touch(t, dir, "paper.aux", "paper.bbl", "paper.blg")

	removed, err := newTestDriver(&fakeRunner{}, WithAuxExtensions([]string{".bbl", ".blg"})).Clean(src, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"paper.bbl", "paper.blg"}, removed)
	assert.FileExists(t, filepath.Join(dir, "paper.aux"))
}

func TestClean_ReportsRemovalFailureAndContinues(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "slides.tex")
	// A non-empty directory named like an aux file cannot be removed with os.Remove.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "slides.aux"), 0o755))
	touch(t, filepath.Join(dir, "slides.aux"), "keep")
	touch(t, dir, "slides.log")

	removed, err := newTestDriver(&fakeRunner{}).Clean(src, "")
	require.Error(t, err)
	assert.Equal(t, []string{"slides.log"}, removed)
}

type cleanObserver struct {
	baseObserver
	dir     string
	removed []string
}

func (c *cleanObserver) OnClean(dir string, removed []string) { c.dir, c.removed = dir, removed }

func TestClean_NotifiesObserver(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "slides.tex")
	touch(t, dir, "slides.nav")
	obs := &cleanObserver{}

	_, err := newTestDriver(&fakeRunner{}, WithObserver(obs)).Clean(src, "")
	require.NoError(t, err)
	assert.Equal(t, dir, obs.dir)
	assert.Equal(t, []string{"slides.nav"}, obs.removed)
}
