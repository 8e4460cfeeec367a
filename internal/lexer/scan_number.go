package lexer

import (
	"reckon/internal/token"
)

// scanNumber consumes a maximal run of ASCII digits. The value is
// accumulated as v*10+d in int64; very long literals wrap silently.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	var v int64
	for isDec(lx.cursor.Peek()) {
		d := lx.cursor.Bump() - '0'
		v = v*10 + int64(d)
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind:  token.Number,
		Span:  sp,
		Text:  lx.text(sp.Start, sp.End),
		Value: v,
	}
}
