package latex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// SourceExt is the only accepted source extension.
	SourceExt = ".tex"
	// OutputExt is the extension of the document the engine produces.
	OutputExt = ".pdf"
)

// Source describes a validated LaTeX source file.
type Source struct {
	Path string // absolute path
	Dir  string // directory the engine runs in
	Name string // file name passed to the engine
	Stem string // base name without extension
}

// NewSource resolves path and checks that it exists and ends in SourceExt.
func NewSource(path string) (Source, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Source{}, fmt.Errorf("%w: %s: %w", ErrSourceNotFound, path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Source{}, fmt.Errorf("%w: %s: %w", ErrSourceNotFound, path, err)
	}
	if info.IsDir() {
		return Source{}, fmt.Errorf("%w: %s is a directory", ErrSourceNotFound, path)
	}
	if filepath.Ext(abs) != SourceExt {
		return Source{}, fmt.Errorf("%w: %s: want %s", ErrInvalidExtension, path, SourceExt)
	}
	return sourceFor(abs), nil
}

// sourceFor builds a Source without touching the filesystem.
func sourceFor(abs string) Source {
	name := filepath.Base(abs)
	return Source{
		Path: abs,
		Dir:  filepath.Dir(abs),
		Name: name,
		Stem: strings.TrimSuffix(name, filepath.Ext(name)),
	}
}

// OutputPath returns <dir>/<stem>.pdf.
func (s Source) OutputPath(dir string) string {
	return filepath.Join(dir, s.Stem+OutputExt)
}

// ResolveOutputDir returns the absolute output directory for src: outputDir
// when given, else the source's own directory. When create is set a given
// outputDir is created with its parents.
func ResolveOutputDir(src Source, outputDir string, create bool) (string, error) {
	if outputDir == "" {
		return src.Dir, nil
	}
	abs, err := filepath.Abs(outputDir)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrOutputDir, outputDir, err)
	}
	if create {
		if err := os.MkdirAll(abs, 0o755); err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrOutputDir, outputDir, err)
		}
	}
	return abs, nil
}
