package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeySource     = "source"
	KeyOutputDir  = "output_dir"
	KeyOutput     = "output"
	KeyCompiler   = "compiler"
	KeyPass       = "pass"
	KeyExitCode   = "exit_code"
	KeyDurationMS = "duration_ms"
	KeySizeBytes  = "size_bytes"
	KeyFile       = "file"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Source(path string) slog.Attr    { return slog.String(KeySource, path) }
func OutputDir(dir string) slog.Attr  { return slog.String(KeyOutputDir, dir) }
func Output(path string) slog.Attr    { return slog.String(KeyOutput, path) }
func Compiler(bin string) slog.Attr   { return slog.String(KeyCompiler, bin) }
func Pass(n int) slog.Attr            { return slog.Int(KeyPass, n) }
func ExitCode(code int) slog.Attr     { return slog.Int(KeyExitCode, code) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func SizeBytes(n int64) slog.Attr     { return slog.Int64(KeySizeBytes, n) }
func File(name string) slog.Attr      { return slog.String(KeyFile, name) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
