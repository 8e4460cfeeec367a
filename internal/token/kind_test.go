package token_test

import (
	"testing"

	"reckon/internal/token"
)

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.Bad:        "Bad",
		token.EOF:        "EOF",
		token.Number:     "Number",
		token.KwLet:      "Let",
		token.RParen:     "RParen",
		token.Whitespace: "Whitespace",
		token.Kind(200):  "Kind(200)",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", uint8(k), got, want)
		}
	}
}

func TestPunct(t *testing.T) {
	for r, want := range map[rune]token.Kind{
		'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash,
		'=': token.Assign, '(': token.LParen, ')': token.RParen,
	} {
		got, ok := token.Punct(r)
		if !ok || got != want {
			t.Errorf("Punct(%q) = %v,%v; want %v", r, got, ok, want)
		}
	}
	if k, ok := token.Punct('&'); ok || k != token.Bad {
		t.Errorf("Punct('&') = %v,%v; want Bad,false", k, ok)
	}
}

func TestLookupKeyword(t *testing.T) {
	if k, ok := token.LookupKeyword("let"); !ok || k != token.KwLet {
		t.Fatalf("let: got %v,%v", k, ok)
	}
	for _, s := range []string{"Let", "lets", "x"} {
		if _, ok := token.LookupKeyword(s); ok {
			t.Errorf("%q must not be a keyword", s)
		}
	}
}

func TestIsOperator(t *testing.T) {
	for _, k := range []token.Kind{token.Plus, token.Minus, token.Star, token.Slash} {
		if !(token.Token{Kind: k}).IsOperator() {
			t.Errorf("%v should be an operator", k)
		}
	}
	for _, k := range []token.Kind{token.Assign, token.LParen, token.Number, token.Bad} {
		if (token.Token{Kind: k}).IsOperator() {
			t.Errorf("%v must not be an operator", k)
		}
	}
}

func TestIsIdent(t *testing.T) {
	if !(token.Token{Kind: token.Ident, Text: "x"}).IsIdent() {
		t.Error("Ident token not recognised")
	}
	for _, k := range []token.Kind{token.KwLet, token.Number, token.Bad, token.EOF} {
		if (token.Token{Kind: k}).IsIdent() {
			t.Errorf("%v must not be an identifier", k)
		}
	}
}
