// Package metrics records relinking runs as Prometheus metrics.
//
// prrelink is a short-lived CLI, so metrics are not served over HTTP.
// Instead the registry is written to a node_exporter textfile after every
// run when a textfile path is configured.
package metrics
