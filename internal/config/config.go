package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when -c/--config is not given.
const DefaultPath = "texbuild.yaml"

// Config represents the texbuild configuration file.
type Config struct {
	Compiler CompilerConfig `yaml:"compiler"`
	Clean    CleanConfig    `yaml:"clean"`
	Logging  LoggingConfig  `yaml:"logging"`
	Watch    WatchConfig    `yaml:"watch"`
}

// CompilerConfig controls how the external compiler is invoked.
type CompilerConfig struct {
	Binary          string          `yaml:"binary"`
	ExtraArgs       []string        `yaml:"extra_args,omitempty"`
	SourceDateEpoch SourceDateEpoch `yaml:"source_date_epoch"`
}

// CleanConfig overrides the auxiliary extensions removed by clean.
type CleanConfig struct {
	Extensions []string `yaml:"extensions,omitempty"`
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	Debounce    time.Duration `yaml:"debounce"`
	MetricsAddr string        `yaml:"metrics_addr,omitempty"`
}

// Load reads the configuration file at path. A missing file yields defaults;
// a file that exists but cannot be parsed or validated is an error.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Debug("No configuration file, using defaults", "path", path)
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		// Expand environment variables in the YAML content
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
