package latex

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/texbuild/internal/logfields"
)

// AuxExtensions are the auxiliary files a beamer/article build leaves behind.
var AuxExtensions = []string{
	".aux", ".log", ".nav", ".out", ".snm", ".toc",
	".vrb", ".synctex.gz", ".fdb_latexmk", ".fls",
}

// Clean removes <stem><ext> for each configured auxiliary extension from
// outputDir, or from the source's directory when outputDir is empty. The source
// file itself need not exist. Missing files are skipped; failures to remove a
// present file are logged and joined into the returned error while the sweep
// continues. removed lists file names in extension order.
func (d *Driver) Clean(sourcePath, outputDir string) (removed []string, err error) {
	abs, err := filepath.Abs(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("resolve source path: %w", err)
	}
	src := sourceFor(abs)
	dir, err := ResolveOutputDir(src, outputDir, false)
	if err != nil {
		return nil, err
	}

	var errs []error
	for _, ext := range d.auxExtensions {
		name := src.Stem + ext
		path := filepath.Join(dir, name)
		rmErr := os.Remove(path)
		switch {
		case rmErr == nil:
			removed = append(removed, name)
			d.logger.Debug("Removed auxiliary file", logfields.File(name))
		case errors.Is(rmErr, fs.ErrNotExist):
		default:
			d.logger.Warn("Failed to remove auxiliary file", logfields.File(name), logfields.Error(rmErr))
			errs = append(errs, rmErr)
		}
	}

	if len(removed) > 0 {
		d.logger.Info("Cleaned auxiliary files", logfields.OutputDir(dir), "files", strings.Join(removed, ", "))
	}
	d.observers.OnClean(dir, removed)
	return removed, errors.Join(errs...)
}
