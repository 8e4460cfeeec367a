// Package trace records the structure of a reckon run: which phases ran,
// for which files, and how long each took.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	reckon run --trace=- --trace-level=phase main.rk
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Only failures
//   - LevelPhase: Driver and phase boundaries (lex, parse, eval, emit)
//   - LevelDetail: Per-file events of directory runs
//   - LevelDebug: Everything
//
// # Context Propagation
//
// Tracers travel with the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
