// Package trace records what the uregex commands do and how long it takes.
//
// Enable it from the command line:
//
//	uregex batch --trace=- --trace-level=detail
//
// Events are written as they happen, either as indented text or as
// newline-delimited JSON (chosen from the output file extension, ".ndjson").
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: failures only
//   - LevelPhase: commands and batch phases
//   - LevelDetail: one span per rendered set
//   - LevelDebug: everything, including cache lookups
//
// # Context
//
// The tracer travels in a context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeSet, "set:latin", parent)
//	defer span.End("")
package trace
