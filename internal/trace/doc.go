// Package trace records what the expander is doing: driver steps, per-pass
// boundaries, per-file work and individual expansion sites.
//
// # Usage
//
//	monoforce expand --trace=- --trace-level=detail src/
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Nothing is streamed
//   - LevelPhase: Driver and pass boundaries
//   - LevelDetail: Per-file events
//   - LevelDebug: Everything including individual expansion sites
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "expand", parentID)
//	defer span.End("")
package trace
