package latex

import (
	"errors"

	"git.home.luguber.info/inful/texbuild/internal/metrics"
)

// Observer receives callbacks around the compile lifecycle.
type Observer interface {
	OnCompileStart(src Source, outputDir string)
	OnPassStart(pass int)
	OnPassComplete(pass PassResult)
	OnCompileComplete(res *Result, err error)
	OnClean(dir string, removed []string)
}

// recorderObserver adapts metrics.Recorder into an Observer.
type recorderObserver struct{ rec metrics.Recorder }

func (r recorderObserver) OnCompileStart(Source, string) {}
func (r recorderObserver) OnPassStart(int)               {}

func (r recorderObserver) OnPassComplete(p PassResult) {
	r.rec.ObservePassDuration(p.Pass, p.Duration)
	switch {
	case p.ExitCode == 0:
		r.rec.IncPassResult(p.Pass, metrics.ResultSuccess)
	case p.ExitCode > 0:
		r.rec.IncPassResult(p.Pass, metrics.ResultNonZero)
	default:
		r.rec.IncPassResult(p.Pass, metrics.ResultError)
	}
}

func (r recorderObserver) OnCompileComplete(res *Result, err error) {
	r.rec.ObserveBuildDuration(res.Duration())
	switch {
	case err == nil:
		r.rec.IncBuildOutcome(metrics.OutcomeSuccess)
		r.rec.SetOutputBytes(res.OutputBytes)
	case errors.Is(err, ErrCanceled):
		r.rec.IncBuildOutcome(metrics.OutcomeCanceled)
	default:
		r.rec.IncBuildOutcome(metrics.OutcomeFailed)
	}
}

func (r recorderObserver) OnClean(_ string, removed []string) {
	r.rec.IncCleanedFiles(len(removed))
}

// observers fans callbacks out in registration order.
type observers []Observer

func (o observers) OnCompileStart(src Source, dir string) {
	for _, ob := range o {
		ob.OnCompileStart(src, dir)
	}
}

func (o observers) OnPassStart(pass int) {
	for _, ob := range o {
		ob.OnPassStart(pass)
	}
}

func (o observers) OnPassComplete(p PassResult) {
	for _, ob := range o {
		ob.OnPassComplete(p)
	}
}

func (o observers) OnCompileComplete(res *Result, err error) {
	for _, ob := range o {
		ob.OnCompileComplete(res, err)
	}
}

func (o observers) OnClean(dir string, removed []string) {
	for _, ob := range o {
		ob.OnClean(dir, removed)
	}
}
