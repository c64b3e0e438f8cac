package config

import "time"

const (
	DefaultCompiler = "xelatex"
	DefaultDebounce = 500 * time.Millisecond
)

func applyDefaults(cfg *Config) {
	if cfg.Compiler.Binary == "" {
		cfg.Compiler.Binary = DefaultCompiler
	}
	if cfg.Compiler.SourceDateEpoch == "" {
		cfg.Compiler.SourceDateEpoch = SourceDateEpochOff
	} else {
		cfg.Compiler.SourceDateEpoch = NormalizeSourceDateEpoch(string(cfg.Compiler.SourceDateEpoch))
	}
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
	if cfg.Watch.Debounce <= 0 {
		cfg.Watch.Debounce = DefaultDebounce
	}
}
