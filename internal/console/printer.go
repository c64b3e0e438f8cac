// Package console prints user-facing compile progress. Styling follows the
// capabilities of the destination writer, so pipes and files get plain text.
package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"git.home.luguber.info/inful/texbuild/internal/latex"
)

var (
	colorSuccess = lipgloss.Color("#10B981") // Green
	colorWarning = lipgloss.Color("#F59E0B") // Amber
	colorError   = lipgloss.Color("#EF4444") // Red
	colorMuted   = lipgloss.Color("#9CA3AF") // Medium gray
)

// Printer implements latex.Observer by writing progress lines.
type Printer struct {
	out, errOut io.Writer
	// verbose suppresses the first-pass warning; the engine output is
	// already streamed in that mode.
	verbose bool

	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
	bold    lipgloss.Style
}

var _ latex.Observer = (*Printer)(nil)

// NewPrinter writes progress to out and problems to errOut.
func NewPrinter(out, errOut io.Writer, verbose bool) *Printer {
	outR := lipgloss.NewRenderer(out)
	errR := lipgloss.NewRenderer(errOut)
	return &Printer{
		out:     out,
		errOut:  errOut,
		verbose: verbose,
		success: outR.NewStyle().Foreground(colorSuccess).Bold(true),
		warning: outR.NewStyle().Foreground(colorWarning),
		failure: errR.NewStyle().Foreground(colorError).Bold(true),
		muted:   outR.NewStyle().Foreground(colorMuted),
		bold:    outR.NewStyle().Bold(true),
	}
}

func (p *Printer) OnCompileStart(src latex.Source, outputDir string) {
	p.printf(p.out, "%s %s\n", p.bold.Render("Compiling:"), src.Path)
	p.printf(p.out, "%s\n", p.muted.Render("Working directory: "+src.Dir))
	p.printf(p.out, "%s\n", p.muted.Render("Output directory:  "+outputDir))
}

func (p *Printer) OnPassStart(pass int) {
	label := "first pass"
	if pass == latex.Passes {
		label = "second pass (resolving references)"
	}
	p.printf(p.out, "\n[%d/%d] %s...\n", pass, latex.Passes, label)
}

func (p *Printer) OnPassComplete(pr latex.PassResult) {
	if pr.ExitCode == 0 {
		return
	}
	if pr.Pass < latex.Passes {
		if p.verbose {
			return
		}
		p.printf(p.out, "%s\n", p.warning.Render("Compile warning (references may be unresolved, continuing with second pass)"))
		if pr.Preview != "" {
			p.printf(p.out, "%s\n", pr.Preview)
		}
		return
	}
	p.printf(p.errOut, "%s\n", p.failure.Render(fmt.Sprintf("Compiler exited with code %d", pr.ExitCode)))
	if pr.Preview != "" {
		p.printf(p.errOut, "Error output:\n%s\n", pr.Preview)
	}
}

func (p *Printer) OnCompileComplete(res *latex.Result, err error) {
	switch {
	case err == nil:
		p.printf(p.out, "\n%s\n", p.success.Render("✓ Compiled successfully"))
		p.printf(p.out, "PDF:  %s\n", res.Output)
		p.printf(p.out, "Size: %s\n", FormatSize(res.OutputBytes))
	case errors.Is(err, latex.ErrOutputMissing):
		p.printf(p.errOut, "\n%s\n", p.failure.Render("✗ Compilation failed, PDF not found"))
		for _, d := range res.Diagnostics {
			p.printf(p.errOut, "  %s:%d: %s\n", d.File, d.Line, d.Message)
		}
	}
}

func (p *Printer) OnClean(_ string, removed []string) {
	if len(removed) == 0 {
		return
	}
	p.printf(p.out, "\nCleaned auxiliary files: %s\n", strings.Join(removed, ", "))
}

func (p *Printer) printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

// FormatSize renders a byte count in KB with one decimal, or MB for large files.
func FormatSize(n int64) string {
	const kb = 1024.0
	if float64(n) >= kb*kb {
		return fmt.Sprintf("%.1f MB", float64(n)/(kb*kb))
	}
	return fmt.Sprintf("%.1f KB", float64(n)/kb)
}
