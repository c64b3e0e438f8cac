package config

import (
	"log/slog"
	"strings"
)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// NormalizeLogLevel maps raw input to a LogLevel, defaulting to info.
func NormalizeLogLevel(raw string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// SlogLevel converts the level for slog.HandlerOptions.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// NormalizeLogFormat maps raw input to a LogFormat, defaulting to text.
func NormalizeLogFormat(raw string) LogFormat {
	if strings.ToLower(strings.TrimSpace(raw)) == "json" {
		return LogFormatJSON
	}
	return LogFormatText
}

// SourceDateEpoch selects whether SOURCE_DATE_EPOCH is derived from git.
type SourceDateEpoch string

const (
	SourceDateEpochAuto SourceDateEpoch = "auto"
	SourceDateEpochOff  SourceDateEpoch = "off"
)

// NormalizeSourceDateEpoch returns "" for unrecognized values so Validate can report them.
func NormalizeSourceDateEpoch(raw string) SourceDateEpoch {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "auto", "git":
		return SourceDateEpochAuto
	case "off", "false", "none":
		return SourceDateEpochOff
	default:
		return ""
	}
}
