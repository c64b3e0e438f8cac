// Package report persists a compile Result as a YAML build report.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/texbuild/internal/latex"
)

// Report is the on-disk document written by --report.
type Report struct {
	SchemaVersion int           `yaml:"schema_version"`
	Result        *latex.Result `yaml:"result"`
}

// CurrentSchema is bumped whenever fields are renamed or removed.
const CurrentSchema = 1

// FileMode is the permission of written reports, like any other build output.
const FileMode os.FileMode = 0o644

// Write stores res at path, creating parent directories. The file is written
// to a temporary sibling first and renamed into place.
func Write(path string, res *latex.Result) error {
	if res == nil {
		return fmt.Errorf("report: nil result")
	}
	data, err := yaml.Marshal(Report{SchemaVersion: CurrentSchema, Result: res})
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".texbuild-report-*")
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := tmp.Chmod(FileMode); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("set report permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close report: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("install report: %w", err)
	}
	return nil
}
