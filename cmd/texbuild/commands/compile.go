package commands

import (
	"git.home.luguber.info/inful/texbuild/internal/latex"
	"git.home.luguber.info/inful/texbuild/internal/logfields"
	"git.home.luguber.info/inful/texbuild/internal/report"
)

// CompileCmd implements the default 'compile' command.
type CompileCmd struct {
	Source string `arg:"" name:"source" help:"LaTeX source file (.tex)"`
	Output string `short:"o" help:"Output directory (default: the source file's directory)"`
	Clean  bool   `help:"Remove auxiliary files after a successful compile"`
	Report string `help:"Write a YAML build report to this file"`
}

func (c *CompileCmd) Run(g *Global, root *CLI) error {
	d := g.newDriver(nil, root.Verbose)
	res, err := d.Compile(g.Ctx, c.Source, latex.Options{OutputDir: c.Output, Verbose: root.Verbose})

	if c.Report != "" {
		if rerr := report.Write(c.Report, res); rerr != nil {
			g.Logger.Warn("Failed to write build report", "path", c.Report, logfields.Error(rerr))
		} else {
			g.Logger.Debug("Wrote build report", "path", c.Report)
		}
	}
	if err != nil {
		return err
	}

	if c.Clean {
		g.cleanAfterCompile(d, c.Source, c.Output)
	}
	return nil
}
