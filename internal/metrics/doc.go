// Package metrics records index generation metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	gen := indexer.New(fs, cfg, renderer) // uses metrics.NoopRecorder{}
//	gen.WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// PrometheusRecorder registers its collectors on a caller-owned registry. A
// one-shot CLI run has no scrape endpoint, so the registry is written to a
// node_exporter textfile with WriteTextfile when the run ends.
package metrics
