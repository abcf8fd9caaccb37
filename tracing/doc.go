// Package tracing wires OpenTelemetry into the accounting engine.  Spans are
// no-ops until Init or InitWithExporter installs a tracer provider, so
// applications that do not need tracing pay nothing for it.
package tracing
