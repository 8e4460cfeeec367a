package token

import (
	"reckon/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	// Value holds the decoded literal for Number tokens.
	Value int64
}

// IsOperator reports whether the token is one of + - * /.
func (t Token) IsOperator() bool {
	switch t.Kind {
	case Plus, Minus, Star, Slash:
		return true
	default:
		return false
	}
}

// IsTrivia reports whether the parser skips this token.
func (t Token) IsTrivia() bool { return t.Kind == Whitespace }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

func (t Token) String() string {
	if t.Kind == EOF {
		return "EOF"
	}
	return t.Kind.String() + "(" + t.Text + ")"
}
