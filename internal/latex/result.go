package latex

import "time"

// Passes is the fixed number of compiler runs per compile.
const Passes = 2

// PassResult records one compiler run.
type PassResult struct {
	Pass     int           `json:"pass" yaml:"pass"`
	ExitCode int           `json:"exit_code" yaml:"exit_code"`
	Preview  string        `json:"preview,omitempty" yaml:"preview,omitempty"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Result summarizes a compile. It is populated as far as the compile got, so
// failed compiles still report which passes ran.
type Result struct {
	BuildID     string       `json:"build_id" yaml:"build_id"`
	Source      string       `json:"source" yaml:"source"`
	Compiler    string       `json:"compiler" yaml:"compiler"`
	OutputDir   string       `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	Output      string       `json:"output,omitempty" yaml:"output,omitempty"`
	OutputBytes int64        `json:"output_bytes,omitempty" yaml:"output_bytes,omitempty"`
	Passes      []PassResult `json:"passes,omitempty" yaml:"passes,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Started     time.Time    `json:"started" yaml:"started"`
	Finished    time.Time    `json:"finished" yaml:"finished"`
	Success     bool         `json:"success" yaml:"success"`
	Error       string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// Duration is the wall time of the whole compile.
func (r *Result) Duration() time.Duration {
	if r.Finished.IsZero() {
		return 0
	}
	return r.Finished.Sub(r.Started)
}

// FinalPass returns the last pass that ran, if any.
func (r *Result) FinalPass() (PassResult, bool) {
	if len(r.Passes) == 0 {
		return PassResult{}, false
	}
	return r.Passes[len(r.Passes)-1], true
}
