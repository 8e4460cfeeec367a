package token

import "fmt"

// Kind represents the category of a source token.
type Kind uint8

const (
	// Bad marks a character that starts no valid token (e.g. '&').
	Bad Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Number is a run of ASCII decimal digits.
	Number
	// Ident is a run of letters that is not a keyword.
	Ident
	// KwLet represents the 'let' keyword.
	KwLet // let

	Plus   // +
	Minus  // -
	Star   // *
	Slash  // /
	Assign // =
	LParen // (
	RParen // )

	// Whitespace is exactly one whitespace rune.
	Whitespace
)

var kindNames = [...]string{
	Bad:        "Bad",
	EOF:        "EOF",
	Number:     "Number",
	Ident:      "Ident",
	KwLet:      "Let",
	Plus:       "Plus",
	Minus:      "Minus",
	Star:       "Star",
	Slash:      "Slash",
	Assign:     "Assign",
	LParen:     "LParen",
	RParen:     "RParen",
	Whitespace: "Whitespace",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Punct maps a single punctuation rune to its kind.
func Punct(r rune) (Kind, bool) {
	switch r {
	case '+':
		return Plus, true
	case '-':
		return Minus, true
	case '*':
		return Star, true
	case '/':
		return Slash, true
	case '=':
		return Assign, true
	case '(':
		return LParen, true
	case ')':
		return RParen, true
	default:
		return Bad, false
	}
}
