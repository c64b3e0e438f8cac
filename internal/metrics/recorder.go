package metrics

import "time"

// ResultLabel enumerates compiler pass result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultNonZero ResultLabel = "nonzero"
	ResultError   ResultLabel = "error"
)

// BuildOutcomeLabel enumerates final build outcomes.
type BuildOutcomeLabel string

const (
	OutcomeSuccess  BuildOutcomeLabel = "success"
	OutcomeFailed   BuildOutcomeLabel = "failed"
	OutcomeCanceled BuildOutcomeLabel = "canceled"
)

// Recorder defines observability hooks for compile and pass metrics. Implementations
// may forward to Prometheus, OpenTelemetry, etc. All methods must be safe for nil receivers
// when using the NoopRecorder (allowing optional injection).
type Recorder interface {
	ObservePassDuration(pass int, d time.Duration)
	IncPassResult(pass int, result ResultLabel)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	SetOutputBytes(n int64)
	IncCleanedFiles(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObservePassDuration(int, time.Duration) {}
func (NoopRecorder) IncPassResult(int, ResultLabel)         {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)     {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)      {}
func (NoopRecorder) SetOutputBytes(int64)                   {}
func (NoopRecorder) IncCleanedFiles(int)                    {}
