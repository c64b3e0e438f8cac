package config

import (
	"errors"
	"fmt"
	"strings"

	terrors "git.home.luguber.info/inful/texbuild/internal/errors"
)

// Validate checks a configuration after defaults have been applied. Failures
// are config-category BuildErrors naming the offending field.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("configuration is nil")
	}
	if strings.ContainsAny(cfg.Compiler.Binary, " \t\n") {
		return terrors.ValidationFailed("compiler.binary",
			fmt.Sprintf("must be a single executable name or path, got %q", cfg.Compiler.Binary))
	}
	if cfg.Compiler.SourceDateEpoch == "" {
		return terrors.ValidationFailed("compiler.source_date_epoch", "must be auto or off")
	}
	for _, arg := range cfg.Compiler.ExtraArgs {
		if strings.HasPrefix(arg, "-output-directory") || strings.HasPrefix(arg, "-interaction") {
			return terrors.ValidationFailed("compiler.extra_args", fmt.Sprintf("must not override %q", arg))
		}
	}
	for _, ext := range cfg.Clean.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return terrors.ValidationFailed("clean.extensions", fmt.Sprintf("entries must start with a dot, got %q", ext))
		}
		if ext == ".pdf" || ext == ".tex" {
			return terrors.ValidationFailed("clean.extensions", "must not include "+ext)
		}
	}
	return nil
}
