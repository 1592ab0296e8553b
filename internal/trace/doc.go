// Package trace provides structured tracing for fluentkit commands.
//
// Tracing shows where time goes while resources are parsed, loaded and
// resolved, and which locales a lookup visited before it found a message.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	fluentkit check --trace=detail --trace-output=- ./locales
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - Nop: Zero-overhead no-op tracer when disabled
//   - StreamTracer: Immediate write to output (file/stderr)
//   - RingTracer: Circular buffer, also used by tests to assert events
//   - MultiTracer: Combines multiple tracers
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Only crash dumps
//   - LevelPhase: command and phase boundaries
//   - LevelDetail: Per-resource events
//   - LevelDebug: Everything including message lookups
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.StartSpan(ctx, trace.ScopePhase, "parse")
//	defer span.End("")
//	trace.Point(trace.FromContext(ctx), trace.ScopeLookup, "l10n.lookup", extra)
package trace
