package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические. The lexer itself stays silent; the parser reports Bad
	// tokens it cannot use under LexUnknownChar.
	LexUnknownChar Code = 1001

	// Парсерные
	SynUnexpectedToken  Code = 2001
	SynUnclosedParen    Code = 2006
	SynExpectIdentifier Code = 2102
	SynExpectAssign     Code = 2103
	SynExpectExpression Code = 2203

	// Проектные
	PrjManifestInvalid Code = 5001
	PrjMainMissing     Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode:         "Unknown error",
	LexUnknownChar:      "Unknown character",
	SynUnexpectedToken:  "Unexpected token",
	SynUnclosedParen:    "Unclosed parenthesis",
	SynExpectIdentifier: "Expected identifier",
	SynExpectAssign:     "Expected '='",
	SynExpectExpression: "Expected expression",
	PrjManifestInvalid:  "Invalid reckon.toml",
	PrjMainMissing:      "Main source file not found",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
