// Package diag defines the diagnostic model shared by the lexer, the
// transforms and the expansion driver.
//
// # Purpose
//
//   - Provide deterministic data structures for findings produced while
//     expanding `#[mono]` attributes and `mono!` path invocations.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// Package diag does not perform any terminal formatting or IO. Rendering lives
// in internal/diagfmt.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning, Error.
//   - Code – numeric identifier with a stable prefixed ID (LEX, SYN, MON, IO, CFG).
//   - Message – short, actionable text.
//   - Primary – the span the diagnostic is attached to.
//   - Notes – optional secondary spans.
//   - Fixes – optional text edits (for example dropping a duplicate substitution).
//
// An error diagnostic aborts the expansion it belongs to and nothing else:
// sibling attributes and other files keep expanding.
package diag
