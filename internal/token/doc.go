// Package token defines lexical token kinds for reckon source.
// Invariants:
//   - Token.Text equals the source bytes under Token.Span.
//   - Spans of consecutive tokens are adjacent and cover the whole input.
//   - Whitespace is an ordinary token, one per rune; the parser drops it.
//   - EOF is zero-length and appears exactly once, last.
package token
