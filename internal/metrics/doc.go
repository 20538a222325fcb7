// Package metrics provides build observability for assetbuild.
//
// Components receive a Recorder; NoopRecorder is the default and does
// nothing. PrometheusRecorder registers build metrics on a registry which
// WriteTextfile can export in the Prometheus text format, for example for the
// node_exporter textfile collector after a CI build.
package metrics
