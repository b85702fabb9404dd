// Package parser finds the use sites of forced instantiation in a Rust
// source file.
//
// It does not build a syntax tree. Scan walks the token stream once, tracks
// block nesting well enough to tell impl/trait bodies from everything else,
// and records:
//   - fn items carrying at least one recognised attribute, with the
//     signature data internal/mono needs (name, generic parameters, span);
//   - invocations of recognised path macros with their argument tokens.
//
// Bodies of other macro invocations are skipped unread.
package parser
