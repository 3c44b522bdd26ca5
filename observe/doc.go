// Package observe provides observability primitives for guarded
// streams.
//
// It is a pure instrumentation library: no stream logic, no transport,
// no I/O beyond exporter setup. Consumers wire the logger and metrics
// into guards via guard.WithLogger and guard.WithMetrics.
package observe
