package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		out:     os.Stderr,
		exit:    os.Exit,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
// Every compile failure category exits 1; scripts only distinguish success from failure.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if be, ok := As(err); ok {
		return a.formatBuildError(be)
	}

	return fmt.Sprintf("Error: %v", err)
}

// formatBuildError formats a BuildError for display.
func (a *CLIErrorAdapter) formatBuildError(err *BuildError) string {
	if a.verbose {
		return "Error: " + err.Error()
	}

	switch err.Category {
	case CategoryConfig, CategoryInput, CategoryTool:
		if path, ok := err.Context["path"]; ok {
			if err.Category == CategoryConfig && err.Cause != nil {
				return fmt.Sprintf("Error: %s: %v: %s", err.Message, path, causeMessage(err.Cause))
			}
			return fmt.Sprintf("Error: %s: %v", err.Message, path)
		}
		if bin, ok := err.Context["binary"]; ok {
			return fmt.Sprintf("Error: %s (%v)", err.Message, bin)
		}
		return "Error: " + err.Message
	default:
		if err.Cause != nil {
			return fmt.Sprintf("Error: %s: %s: %v", err.Category, err.Message, err.Cause)
		}
		return fmt.Sprintf("Error: %s: %s", err.Category, err.Message)
	}
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)
	message := a.FormatError(err)

	if a.shouldLog(err) {
		a.logError(err)
	}

	_, _ = fmt.Fprintf(a.out, "%s\n", message)
	a.exit(exitCode)
}

// shouldLog determines if an error should be logged.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	switch GetCategory(err) {
	case CategoryInternal, CategoryProcess:
		return true
	default:
		return false
	}
}

// causeMessage prefers the bare message of a nested BuildError.
func causeMessage(err error) string {
	if be, ok := As(err); ok {
		return be.Message
	}
	return err.Error()
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	if be, ok := As(err); ok {
		level := a.slogLevelFromSeverity(be.Severity)
		attrs := []slog.Attr{
			slog.String("category", string(be.Category)),
		}
		for k, v := range be.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
		if be.Cause != nil {
			attrs = append(attrs, slog.String("cause", be.Cause.Error()))
		}

		a.logger.LogAttrs(context.Background(), level, be.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

// slogLevelFromSeverity converts BuildError severity to slog level.
func (a *CLIErrorAdapter) slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
