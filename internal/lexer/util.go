package lexer

import (
	"unicode"
	"unicode/utf8"
)

// peekRune decodes the rune under the cursor; size 0 means end of input.
// Invalid UTF-8 decodes as RuneError with size 1.
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
}

func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	lx.cursor.Advance(sz)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isSpaceRune(r rune) bool { return unicode.IsSpace(r) }

// Identifiers are letters only: digits and '_' end the run.
func isLetterRune(r rune) bool { return unicode.IsLetter(r) }
