package commands

import (
	"fmt"

	terrors "git.home.luguber.info/inful/texbuild/internal/errors"
)

// CleanCmd implements the 'clean' command.
type CleanCmd struct {
	Source string `arg:"" name:"source" help:"LaTeX source file whose auxiliary files are removed (need not exist)"`
	Output string `short:"o" help:"Directory holding the auxiliary files (default: the source file's directory)"`
}

func (c *CleanCmd) Run(g *Global) error {
	removed, err := g.newDriver(nil, false).Clean(c.Source, c.Output)
	if err != nil {
		return terrors.Wrap(err, terrors.CategoryFileSystem, terrors.SeverityError, "failed to remove auxiliary files")
	}
	if len(removed) == 0 {
		_, _ = fmt.Fprintln(g.Stdout, "No auxiliary files to clean")
	}
	return nil
}
