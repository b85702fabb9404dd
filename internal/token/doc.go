// Package token defines lexical token kinds and trivia for the Rust surface
// that monoforce rewrites.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Begin..End).
//   - Multi-character operators are only joined where the item scanner needs
//     them ('::', '->', '=>', '..'). '<' and '>' are always single tokens so
//     nested generic argument lists close one bracket at a time.
//   - Comments and doc comments are leading Trivia and never appear in the
//     main token stream; they are preserved byte-for-byte by span-based
//     rewriting.
package token
