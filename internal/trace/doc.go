// Package trace records what the analysis driver is doing: which passes ran,
// on which functions, and for how long.
//
// # Usage
//
//	tessera analyze --trace=- --trace-level=detail prog.yaml
//
// # Architecture
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: writes every event through a log/slog handler
//   - RingTracer: keeps the last N events for dumping after a failure
//   - MultiTracer: combines tracers
//
// # Levels and scopes
//
// Events carry a Scope (driver, pass, func, node). The Level decides which
// scopes are emitted: phase shows driver and pass boundaries, detail adds one
// span per analysed function, debug adds everything.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Begin(ctx, trace.ScopePass, "calltree")
//	defer span.End("")
package trace
