// Package diag defines the diagnostic data model shared by every fluentkit phase.
//
// # Codes
//
// Each diagnostic carries a numeric Code grouped by phase:
//
//   - LEX1xxx – lexer problems (bad escapes, stray braces, junk lines).
//   - SYN2xxx – parser errors; one code per parser.ErrorKind.
//   - RES3xxx – resolution problems reported while formatting messages.
//   - LOC4xxx – lookup failures across the locale fallback chain.
//   - IO5xxx  – file, manifest and cache failures.
//
// Code.ID renders the stable textual identifier (e.g. "SYN2002") and
// Code.Title a short human description.
//
// # Emitting diagnostics
//
// Phases report through a Reporter so emission is decoupled from storage.
// ReportBuilder (ReportError/ReportWarning/ReportInfo) lets a phase attach
// notes and fixes before Emit. BagReporter collects into a Bag, which
// supports sorting, deduplication and a size limit.
//
// # Consumers
//
//   - internal/diagfmt: pretty and JSON rendering.
//   - internal/driver: per-file bag collection for the CLI.
package diag
