package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	terrors "git.home.luguber.info/inful/texbuild/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "texbuild.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvCompiler, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultCompiler, cfg.Compiler.Binary)
	assert.Equal(t, SourceDateEpochOff, cfg.Compiler.SourceDateEpoch, "git-derived timestamps are opt-in")
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.Equal(t, DefaultDebounce, cfg.Watch.Debounce)
	assert.Empty(t, cfg.Clean.Extensions)
}

func TestLoad_ParsesFile(t *testing.T) {
	t.Setenv(EnvCompiler, "")
	path := writeConfig(t, "compiler:\n"+
		"  binary: lualatex\n"+
		"  extra_args: [\"-shell-escape\"]\n"+
		"  source_date_epoch: auto\n"+
		"clean:\n"+
		"  extensions: [\".aux\", \".log\"]\n"+
		"logging:\n"+
		"  level: DEBUG\n"+
		"  format: json\n"+
		"watch:\n"+
		"  debounce: 2s\n"+
		"  metrics_addr: 127.0.0.1:9464\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "lualatex", cfg.Compiler.Binary)
	assert.Equal(t, []string{"-shell-escape"}, cfg.Compiler.ExtraArgs)
	assert.Equal(t, SourceDateEpochAuto, cfg.Compiler.SourceDateEpoch)
	assert.Equal(t, []string{".aux", ".log"}, cfg.Clean.Extensions)
	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, 2*time.Second, cfg.Watch.Debounce)
	assert.Equal(t, "127.0.0.1:9464", cfg.Watch.MetricsAddr)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv(EnvCompiler, "")
	t.Setenv("TEXBUILD_TEST_ENGINE", "pdflatex")
	path := writeConfig(t, "compiler:\n  binary: ${TEXBUILD_TEST_ENGINE}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pdflatex", cfg.Compiler.Binary)
}

func TestLoad_EnvOverridesCompiler(t *testing.T) {
	t.Setenv(EnvCompiler, "/opt/texlive/bin/xelatex")
	path := writeConfig(t, "compiler:\n  binary: lualatex\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/texlive/bin/xelatex", cfg.Compiler.Binary)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Setenv(EnvCompiler, "")
	path := writeConfig(t, "compiler: [unclosed\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestLoad_InvalidSourceDateEpoch(t *testing.T) {
	t.Setenv(EnvCompiler, "")
	path := writeConfig(t, "compiler:\n  source_date_epoch: sometimes\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source_date_epoch")
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"binary with spaces", func(c *Config) { c.Compiler.Binary = "xelatex -shell-escape" }, "compiler.binary"},
		{"extra arg overrides output dir", func(c *Config) { c.Compiler.ExtraArgs = []string{"-output-directory=/tmp"} }, "extra_args"},
		{"extension without dot", func(c *Config) { c.Clean.Extensions = []string{"aux"} }, "start with a dot"},
		{"extension deletes pdf", func(c *Config) { c.Clean.Extensions = []string{".pdf"} }, ".pdf"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{}
			applyDefaults(cfg)
			tc.mutate(cfg)
			err := Validate(cfg)
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
			assert.Equal(t, terrors.CategoryConfig, terrors.GetCategory(err))
		})
	}
	require.Error(t, Validate(nil))
}

func TestNormalizers(t *testing.T) {
	assert.Equal(t, LogLevelWarn, NormalizeLogLevel(" Warning "))
	assert.Equal(t, LogLevelInfo, NormalizeLogLevel("loud"))
	assert.Equal(t, LogFormatJSON, NormalizeLogFormat("JSON"))
	assert.Equal(t, LogFormatText, NormalizeLogFormat("xml"))
	assert.Equal(t, SourceDateEpochOff, NormalizeSourceDateEpoch("false"))
	assert.Equal(t, SourceDateEpoch(""), NormalizeSourceDateEpoch("sometimes"))
}
