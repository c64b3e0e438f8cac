package metrics

import (
	"strconv"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once          sync.Once
	passDuration  *prom.HistogramVec
	passResults   *prom.CounterVec
	buildDuration prom.Histogram
	buildOutcome  *prom.CounterVec
	outputBytes   prom.Gauge
	cleanedFiles  prom.Counter
}

// compileBuckets covers typical xelatex runtimes, from a short letter to a large beamer deck.
var compileBuckets = []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 80, 160}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.passDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "texbuild",
			Name:      "pass_duration_seconds",
			Help:      "Duration of individual compiler passes",
			Buckets:   compileBuckets,
		}, []string{"pass"})
		pr.passResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "texbuild",
			Name:      "pass_results_total",
			Help:      "Compiler pass results by exit status",
		}, []string{"pass", "result"})
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "texbuild",
			Name:      "build_duration_seconds",
			Help:      "Total compile duration across both passes",
			Buckets:   compileBuckets,
		})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "texbuild",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"})
		pr.outputBytes = prom.NewGauge(prom.GaugeOpts{
			Namespace: "texbuild",
			Name:      "output_bytes",
			Help:      "Size of the most recently produced PDF",
		})
		pr.cleanedFiles = prom.NewCounter(prom.CounterOpts{
			Namespace: "texbuild",
			Name:      "cleaned_files_total",
			Help:      "Auxiliary files removed by clean",
		})
		reg.MustRegister(pr.passDuration, pr.passResults, pr.buildDuration, pr.buildOutcome, pr.outputBytes, pr.cleanedFiles)
	})
	return pr
}

func (p *PrometheusRecorder) ObservePassDuration(pass int, d time.Duration) {
	if p == nil || p.passDuration == nil {
		return
	}
	p.passDuration.WithLabelValues(strconv.Itoa(pass)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPassResult(pass int, result ResultLabel) {
	if p == nil || p.passResults == nil {
		return
	}
	p.passResults.WithLabelValues(strconv.Itoa(pass), string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetOutputBytes(n int64) {
	if p == nil || p.outputBytes == nil {
		return
	}
	p.outputBytes.Set(float64(n))
}

func (p *PrometheusRecorder) IncCleanedFiles(n int) {
	if p == nil || p.cleanedFiles == nil || n <= 0 {
		return
	}
	p.cleanedFiles.Add(float64(n))
}
