// Package metrics records conversion metrics.
//
// Components receive a Recorder and default to NoopRecorder, so metrics
// stay optional without nil checks at call sites. PrometheusRecorder is the
// real implementation; the CLI registers it on a private registry and can
// export it as a node_exporter textfile.
package metrics
