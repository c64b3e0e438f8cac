package commands

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	terrors "git.home.luguber.info/inful/texbuild/internal/errors"
	"git.home.luguber.info/inful/texbuild/internal/latex"
	"git.home.luguber.info/inful/texbuild/internal/logfields"
)

// CheckCmd implements the 'check' preflight command.
type CheckCmd struct{}

func (c *CheckCmd) Run(g *Global) error {
	bin := g.Config.Compiler.Binary
	path, err := exec.LookPath(bin)
	if err != nil {
		return terrors.CompilerNotFound(bin, fmt.Errorf("%w: %w", latex.ErrCompilerNotFound, err))
	}

	banner := "unknown"
	out, err := exec.CommandContext(g.Ctx, path, "-version").Output()
	if err != nil {
		g.Logger.Warn("Compiler did not report a version", logfields.Compiler(path), logfields.Error(err))
	} else if line := firstLine(out); line != "" {
		banner = line
	}

	_, _ = fmt.Fprintf(g.Stdout, "compiler: found at %s\nversion:  %s\n", path, banner)
	return nil
}

func firstLine(b []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return line
		}
	}
	return ""
}
