// Package diag defines the diagnostic model shared by the analysis passes.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Func – the IR function the finding belongs to, empty for program-wide
//     findings.
//   - Notes – optional secondary messages, each naming its own function.
//
// # Emitting diagnostics
//
// Passes should use a diag.Reporter to decouple emission from storage. A pass
// constructs a ReportBuilder via ReportError/ReportWarning/ReportInfo, chains
// WithNote and calls Emit. BagReporter aggregates diagnostics into a Bag, which
// supports sorting and deduplication.
//
// Rendering lives in render.go: FormatShort produces one stable line per
// diagnostic for tests and logs, Pretty writes the colored CLI form.
package diag
