// Package lexer turns reckon source into tokens. It keeps no state besides
// a forward-only cursor and never reports diagnostics: unknown characters
// become Bad tokens for the parser to complain about.
package lexer

import (
	"reckon/internal/source"
	"reckon/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	done   bool // EOF уже выдан
}

func New(file *source.File) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
	}
}

// Next returns the next token. The EOF token is returned exactly once;
// after it ok is false.
func (lx *Lexer) Next() (tok token.Token, ok bool) {
	if lx.done {
		return token.Token{}, false
	}

	if lx.cursor.EOF() {
		lx.done = true
		return token.Token{
			Kind: token.EOF,
			Span: lx.emptySpan(),
		}, true
	}

	if isDec(lx.cursor.Peek()) {
		return lx.scanNumber(), true
	}

	r, _ := lx.peekRune()
	switch {
	case isSpaceRune(r):
		return lx.scanSingle(token.Whitespace), true
	case isLetterRune(r):
		return lx.scanIdentOrKeyword(), true
	}

	kind, _ := token.Punct(r)
	return lx.scanSingle(kind), true
}

// Tokenize drains lx, returning every token up to and including EOF.
func Tokenize(file *source.File) []token.Token {
	lx := New(file)
	out := make([]token.Token, 0, len(file.Content)/2+1)
	for {
		tok, ok := lx.Next()
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}

func (lx *Lexer) text(start, end uint32) string {
	return string(lx.file.Content[start:end])
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Point(lx.file.ID, lx.cursor.Off)
}
