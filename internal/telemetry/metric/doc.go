// Package metric owns the Prometheus registry of a proxystore process.
//
// The registry carries the Go runtime and process collectors next to the
// storage metrics registered by pkg/proxystorage and pkg/storage/kvstore.
// Samples flattens a gather into rows for the CLI; Handler serves the
// text exposition format.
package metric
