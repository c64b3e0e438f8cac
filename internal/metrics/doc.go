// Package metrics provides compile metrics for texbuild.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so one-shot compiles carry no metrics overhead:
//
//	driver := latex.NewDriver(cfg.Compiler.Binary) // NoopRecorder
//
// The watch command swaps in a PrometheusRecorder bound to its own registry
// and serves it with Server:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	driver := latex.NewDriver(bin, latex.WithRecorder(rec))
//	srv := metrics.NewServer(addr, reg, status)
package metrics
